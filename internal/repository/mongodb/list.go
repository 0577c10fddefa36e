package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page is a normalized pagination request.
type Page struct {
	Number int
	Size   int
}

// NormalizePage clamps raw page/limit query values into a usable Page.
func NormalizePage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return Page{Number: page, Size: limit}
}

func (p Page) skip() int64 {
	return int64(p.Number-1) * int64(p.Size)
}

// findPage runs a count + paged find with a fixed sort and decodes into out,
// which must be a pointer to a slice.
func (r *Repository) findPage(ctx context.Context, coll string, filter bson.M, sort bson.D, p Page, out interface{}) (int64, error) {
	c := r.db.Collection(coll)

	total, err := c.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", coll, err)
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(p.skip()).
		SetLimit(int64(p.Size))

	cursor, err := c.Find(ctx, filter, opts)
	if err != nil {
		return 0, fmt.Errorf("find %s: %w", coll, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return 0, fmt.Errorf("decode %s: %w", coll, err)
	}

	return total, nil
}

// optionsFindSortAsc sorts an unpaged find ascending on one field.
func optionsFindSortAsc(field string) *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: field, Value: 1}})
}

// searchRegex builds a case-insensitive substring matcher.
func searchRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexQuoteMeta(term), Options: "i"}
}

// regexQuoteMeta escapes regex metacharacters so user search terms match
// literally.
func regexQuoteMeta(s string) string {
	const meta = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(meta); j++ {
			if s[i] == meta[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}

// dateRange appends an inclusive date-range condition on field when either
// bound is set.
func dateRange(filter bson.M, field string, from, to *time.Time) {
	cond := bson.M{}
	if from != nil {
		cond["$gte"] = *from
	}
	if to != nil {
		cond["$lte"] = *to
	}
	if len(cond) > 0 {
		filter[field] = cond
	}
}
