package mongostore

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jordanlanch/leaddesk/pkg/query"
)

// Filter translates a condition tree into a MongoDB filter document. A nil
// condition matches every document.
func Filter(c query.Cond) (bson.M, error) {
	switch v := c.(type) {
	case nil:
		return bson.M{}, nil

	case query.And:
		parts := bson.A{}
		for _, child := range v {
			if child == nil {
				continue
			}
			f, err := Filter(child)
			if err != nil {
				return nil, err
			}
			parts = append(parts, f)
		}
		switch len(parts) {
		case 0:
			return bson.M{}, nil
		case 1:
			return parts[0].(bson.M), nil
		}
		return bson.M{"$and": parts}, nil

	case query.Eq:
		return bson.M{key(v.Field): v.Value}, nil

	case query.ContainsFold:
		return bson.M{key(v.Field): primitive.Regex{Pattern: regexp.QuoteMeta(v.Substr), Options: "i"}}, nil

	case query.In:
		return bson.M{key(v.Field): bson.M{"$in": bson.A(v.Values)}}, nil

	case query.Range:
		ops := bson.M{}
		if b := v.Lower; b != nil {
			if b.Inclusive {
				ops["$gte"] = b.Value
			} else {
				ops["$gt"] = b.Value
			}
		}
		if b := v.Upper; b != nil {
			if b.Inclusive {
				ops["$lte"] = b.Value
			} else {
				ops["$lt"] = b.Value
			}
		}
		if len(ops) == 0 {
			return bson.M{}, nil
		}
		return bson.M{key(v.Field): ops}, nil
	}

	return nil, fmt.Errorf("mongostore: unsupported condition %T", c)
}

func key(field string) string {
	if field == "id" {
		return "_id"
	}
	return field
}
