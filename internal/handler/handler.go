package handler

import (
	"mingle/backend/internal/relation"
	"mingle/backend/internal/suggest"

	"gorm.io/gorm"
)

var (
	relationSvc *relation.Service
	suggester   *suggest.Ranker
)

// Init wires the handler package to the database-backed services. Must be
// called once after the database connection is established.
func Init(db *gorm.DB) {
	relationSvc = relation.NewService(relation.NewGormStore(db))
	suggester = suggest.NewRanker(suggest.NewGormStore(db))
}
