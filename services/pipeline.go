package services

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PageSize is the fixed page size for every list endpoint.
const PageSize = 20

// ProductPipeline accumulates optional product filters and materializes them
// into an aggregation pipeline. The zero-cost With* methods return a new
// value instead of mutating the receiver, so a builder can be assembled
// across conditional branches without hidden ordering effects.
//
// When any per-variant filter (price or options) is present the pipeline
// unwinds variants so the predicates apply per variant, then groups the
// survivors back into their parent products. The final $facet produces an
// exact total count alongside the requested page in one store round trip.
type ProductPipeline struct {
	page       int
	perVariant bool
	match      []bson.E
	orClauses  []bson.M
}

// NewProductPipeline starts a builder for the given page. Pages below 1 are
// clamped to 1.
func NewProductPipeline(page int) ProductPipeline {
	if page < 1 {
		page = 1
	}
	return ProductPipeline{page: page}
}

// WithPriceFilter applies the price predicates. An exact price that parses
// as a number takes priority over the range bounds; otherwise gte and lte
// apply as independent bounds and may combine into one range. Values that
// fail to parse are ignored.
func (p ProductPipeline) WithPriceFilter(exact, lte, gte string) ProductPipeline {
	if v, err := strconv.ParseFloat(exact, 64); err == nil {
		p.perVariant = true
		p.match = appendClause(p.match, "variants.price", v)
		return p
	}

	bounds := bson.M{}
	if v, err := strconv.ParseFloat(gte, 64); err == nil {
		bounds["$gte"] = v
	}
	if v, err := strconv.ParseFloat(lte, 64); err == nil {
		bounds["$lte"] = v
	}
	if len(bounds) > 0 {
		p.perVariant = true
		p.match = appendClause(p.match, "variants.price", bounds)
	}
	return p
}

// WithOptions applies the in-stock option filter. The comma-separated list
// is split into tokens; a variant matches when it carries the option and
// records a positive quantity for it, under any one of the tokens. Tokens
// are matched case-sensitively against the stored upper-cased option names.
func (p ProductPipeline) WithOptions(options string) ProductPipeline {
	if options == "" {
		return p
	}

	p.perVariant = true
	clauses := make([]bson.M, 0, len(p.orClauses)+1)
	clauses = append(clauses, p.orClauses...)
	for _, option := range strings.Split(options, ",") {
		clauses = append(clauses, bson.M{
			"variants.options":           option,
			"variants.quantity." + option: bson.M{"$gt": 0},
		})
	}
	p.orClauses = clauses
	return p
}

// WithName applies a case-insensitive substring match on the product name.
func (p ProductPipeline) WithName(name string) ProductPipeline {
	if name == "" {
		return p
	}
	p.match = appendClause(p.match, "name", primitive.Regex{Pattern: name, Options: "i"})
	return p
}

// Build materializes the stage sequence:
// [$unwind]? -> $match -> [$group]? -> $facet.
func (p ProductPipeline) Build() mongo.Pipeline {
	match := bson.M{}
	for _, clause := range p.match {
		match[clause.Key] = clause.Value
	}
	if len(p.orClauses) > 0 {
		match["$or"] = p.orClauses
	}

	var pipeline mongo.Pipeline
	if p.perVariant {
		pipeline = append(pipeline, bson.D{{Key: "$unwind", Value: "$variants"}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	if p.perVariant {
		pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id"},
			{Key: "name", Value: bson.M{"$first": "$name"}},
			{Key: "description", Value: bson.M{"$first": "$description"}},
			{Key: "variants", Value: bson.M{"$push": "$variants"}},
			{Key: "categoryId", Value: bson.M{"$first": "$categoryId"}},
			{Key: "brandId", Value: bson.M{"$first": "$brandId"}},
			{Key: "createdAt", Value: bson.M{"$first": "$createdAt"}},
			{Key: "updatedAt", Value: bson.M{"$first": "$updatedAt"}},
		}}})
	}

	skip := (p.page - 1) * PageSize
	pipeline = append(pipeline, bson.D{{Key: "$facet", Value: bson.M{
		"metadata": bson.A{bson.D{{Key: "$count", Value: "totalProducts"}}},
		"products": bson.A{
			bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
			bson.D{{Key: "$skip", Value: skip}},
			bson.D{{Key: "$limit", Value: PageSize}},
		},
	}}})

	return pipeline
}

// appendClause copies the clause list before appending so shared builder
// values never alias each other's state.
func appendClause(clauses []bson.E, key string, value interface{}) []bson.E {
	next := make([]bson.E, 0, len(clauses)+1)
	next = append(next, clauses...)
	return append(next, bson.E{Key: key, Value: value})
}
