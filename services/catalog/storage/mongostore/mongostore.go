// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package mongostore is a MongoDB-backed Repository. One database, five
// collections; documents are the model structs encoded by the driver with
// an explicit _id mirrored from the model's ID so upserts are natural
// ReplaceOne calls. SaveMappingResult, the one write that touches many
// documents, uses a session transaction; RecordApplication inserts a
// single document, which MongoDB applies atomically on its own.
package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cxalloy/bascat/services/catalog/model"
	"github.com/cxalloy/bascat/services/catalog/storage"
)

// Collection names within the configured database.
const (
	colTemplates    = "templates"
	colApplications = "applications"
	colBACnet       = "bacnet_equipment"
	colCxAlloy      = "cxalloy_equipment"
	colMappings     = "mappings"
)

// Store is a Repository backed by a MongoDB database. The caller owns the
// client lifecycle (connect in main, Disconnect on shutdown).
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ storage.Repository = (*Store)(nil)

// New wraps an already-connected client and database name.
func New(client *mongo.Client, database string) *Store {
	return &Store{client: client, db: client.Database(database)}
}

// templateDoc (and the peer doc types below) mirror the model structs with
// an explicit _id so ReplaceOne upserts key naturally. The model value is
// embedded whole; bson encoding of its exported fields is stable enough for
// a reference adapter, and reads decode back into the same struct.
type templateDoc struct {
	ID  string                  `bson:"_id"`
	Doc model.EquipmentTemplate `bson:"doc"`
}

type applicationDoc struct {
	ID  string                    `bson:"_id"`
	Doc model.TemplateApplication `bson:"doc"`
}

type bacnetDoc struct {
	ID  string                `bson:"_id"`
	Doc model.BACnetEquipment `bson:"doc"`
}

type cxalloyDoc struct {
	ID  string                 `bson:"_id"`
	Doc model.CxAlloyEquipment `bson:"doc"`
}

type mappingDoc struct {
	Doc model.AutoMappingMatch `bson:"doc"`
}

// ListTemplates returns all saved templates sorted by _id.
func (s *Store) ListTemplates(ctx context.Context) ([]model.EquipmentTemplate, error) {
	cur, err := s.db.Collection(colTemplates).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []templateDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.EquipmentTemplate, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Doc)
	}
	return out, nil
}

// GetTemplate returns the template with the given ID, or ErrNotFound.
func (s *Store) GetTemplate(ctx context.Context, id string) (model.EquipmentTemplate, error) {
	var doc templateDoc
	err := s.db.Collection(colTemplates).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.EquipmentTemplate{}, storage.ErrNotFound
	}
	if err != nil {
		return model.EquipmentTemplate{}, err
	}
	return doc.Doc, nil
}

// SaveTemplate upserts a template keyed by its ID.
func (s *Store) SaveTemplate(ctx context.Context, t model.EquipmentTemplate) error {
	_, err := s.db.Collection(colTemplates).ReplaceOne(ctx,
		bson.M{"_id": t.ID}, templateDoc{ID: t.ID, Doc: t}, options.Replace().SetUpsert(true))
	return err
}

// DeleteTemplate removes the template with the given ID, or ErrNotFound.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	res, err := s.db.Collection(colTemplates).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// RecordApplication inserts one immutable application record.
func (s *Store) RecordApplication(ctx context.Context, a model.TemplateApplication) error {
	_, err := s.db.Collection(colApplications).InsertOne(ctx, applicationDoc{ID: a.ID, Doc: a})
	return err
}

// ListApplications returns applications newest first; templateID == ""
// returns all.
func (s *Store) ListApplications(ctx context.Context, templateID string) ([]model.TemplateApplication, error) {
	filter := bson.M{}
	if templateID != "" {
		filter["doc.templateid"] = templateID
	}
	cur, err := s.db.Collection(colApplications).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "doc.appliedat", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []applicationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.TemplateApplication, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Doc)
	}
	return out, nil
}

// ListBACnetEquipment returns all discovered equipment sorted by _id.
func (s *Store) ListBACnetEquipment(ctx context.Context) ([]model.BACnetEquipment, error) {
	cur, err := s.db.Collection(colBACnet).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []bacnetDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.BACnetEquipment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Doc)
	}
	return out, nil
}

// SaveBACnetEquipment upserts a discovered equipment record.
func (s *Store) SaveBACnetEquipment(ctx context.Context, e model.BACnetEquipment) error {
	_, err := s.db.Collection(colBACnet).ReplaceOne(ctx,
		bson.M{"_id": e.ID}, bacnetDoc{ID: e.ID, Doc: e}, options.Replace().SetUpsert(true))
	return err
}

// ListCxAlloyEquipment returns all catalog equipment sorted by _id.
func (s *Store) ListCxAlloyEquipment(ctx context.Context) ([]model.CxAlloyEquipment, error) {
	cur, err := s.db.Collection(colCxAlloy).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []cxalloyDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.CxAlloyEquipment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Doc)
	}
	return out, nil
}

// SaveCxAlloyEquipment upserts a catalog equipment record.
func (s *Store) SaveCxAlloyEquipment(ctx context.Context, e model.CxAlloyEquipment) error {
	_, err := s.db.Collection(colCxAlloy).ReplaceOne(ctx,
		bson.M{"_id": e.ID}, cxalloyDoc{ID: e.ID, Doc: e}, options.Replace().SetUpsert(true))
	return err
}

// SaveMappingResult writes every exact and suggested match inside one
// session transaction. Requires a replica-set or sharded deployment (Mongo
// transactions are unavailable on plain standalone servers).
func (s *Store) SaveMappingResult(ctx context.Context, result model.AutoMappingResult) error {
	docs := make([]any, 0, len(result.Exact)+len(result.Suggested))
	for _, m := range result.Exact {
		docs = append(docs, mappingDoc{Doc: m})
	}
	for _, m := range result.Suggested {
		docs = append(docs, mappingDoc{Doc: m})
	}
	if len(docs) == 0 {
		return nil
	}

	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return s.db.Collection(colMappings).InsertMany(sc, docs)
	})
	return err
}

// ListMappings returns all recorded mapping matches in insertion order.
func (s *Store) ListMappings(ctx context.Context) ([]model.AutoMappingMatch, error) {
	cur, err := s.db.Collection(colMappings).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var docs []mappingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.AutoMappingMatch, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Doc)
	}
	return out, nil
}
