// Package pipeline provides a small typed builder for MongoDB aggregation
// pipelines. Stages are appended in call order, so the composition a caller
// writes is the composition the engine runs, and branch pipelines (counts,
// price bounds) are derived with Clone instead of re-assembling stage slices
// by hand.
package pipeline

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Builder struct {
	stages mongo.Pipeline
}

func New() *Builder {
	return &Builder{}
}

// Clone returns an independent copy of the builder. Later stages on either
// copy do not affect the other.
func (b *Builder) Clone() *Builder {
	stages := make(mongo.Pipeline, len(b.stages))
	copy(stages, b.stages)
	return &Builder{stages: stages}
}

// Build returns the assembled pipeline.
func (b *Builder) Build() mongo.Pipeline {
	return b.stages
}

// Len reports the number of stages added so far.
func (b *Builder) Len() int {
	return len(b.stages)
}

func (b *Builder) append(name string, value interface{}) *Builder {
	b.stages = append(b.stages, bson.D{{Key: name, Value: value}})
	return b
}

// Search adds an Atlas Search text stage with fuzzy matching against a
// single field path.
func (b *Builder) Search(index, path, query string, maxEdits, maxExpansions int) *Builder {
	return b.append("$search", bson.M{
		"index": index,
		"text": bson.M{
			"path":  path,
			"query": query,
			"fuzzy": bson.M{
				"maxEdits":      maxEdits,
				"maxExpansions": maxExpansions,
			},
		},
	})
}

func (b *Builder) Match(filter bson.M) *Builder {
	return b.append("$match", filter)
}

func (b *Builder) Unwind(path string) *Builder {
	return b.append("$unwind", path)
}

// Lookup adds an equality join against another collection.
func (b *Builder) Lookup(from, localField, foreignField, as string) *Builder {
	return b.append("$lookup", bson.M{
		"from":         from,
		"localField":   localField,
		"foreignField": foreignField,
		"as":           as,
	})
}

func (b *Builder) AddFields(fields bson.M) *Builder {
	return b.append("$addFields", fields)
}

func (b *Builder) Project(projection bson.M) *Builder {
	return b.append("$project", projection)
}

func (b *Builder) Group(group bson.M) *Builder {
	return b.append("$group", group)
}

// Sort takes a bson.D so compound sorts keep their key order.
func (b *Builder) Sort(sort bson.D) *Builder {
	return b.append("$sort", sort)
}

func (b *Builder) Skip(n int64) *Builder {
	return b.append("$skip", n)
}

func (b *Builder) Limit(n int64) *Builder {
	return b.append("$limit", n)
}

// Paginate adds skip/limit for a 1-based page.
func (b *Builder) Paginate(page, limit int64) *Builder {
	if page < 1 {
		page = 1
	}
	return b.Skip((page - 1) * limit).Limit(limit)
}

func (b *Builder) Sample(size int64) *Builder {
	return b.append("$sample", bson.M{"size": size})
}

func (b *Builder) Count(field string) *Builder {
	return b.append("$count", field)
}
