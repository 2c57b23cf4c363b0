// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package storage defines the persistence port the catalog core's callers
// program against. The core engines never import this package — persistence
// is an external collaborator; the CLI and any future service layer hold a
// Repository and pass values in and out of the pure engines.
package storage

import (
	"context"
	"errors"

	"github.com/cxalloy/bascat/services/catalog/model"
)

// ErrNotFound is returned by Get/Delete operations when no record carries
// the requested ID.
var ErrNotFound = errors.New("storage: not found")

// Repository is the persistence contract for templates, applications,
// equipment, and mappings.
//
// SaveMappingResult and RecordApplication are the two multi-row writes;
// implementations must make each atomic (a transaction, or a single
// lock-guarded mutation for in-memory stores). Everything else is
// single-row CRUD.
//
// Implementations must be safe for concurrent use.
type Repository interface {
	// ListTemplates returns all saved equipment templates.
	ListTemplates(ctx context.Context) ([]model.EquipmentTemplate, error)

	// GetTemplate returns the template with the given ID, or ErrNotFound.
	GetTemplate(ctx context.Context, id string) (model.EquipmentTemplate, error)

	// SaveTemplate inserts or replaces a template keyed by its ID.
	SaveTemplate(ctx context.Context, t model.EquipmentTemplate) error

	// DeleteTemplate removes the template with the given ID, or ErrNotFound.
	DeleteTemplate(ctx context.Context, id string) error

	// RecordApplication stores one immutable TemplateApplication.
	RecordApplication(ctx context.Context, a model.TemplateApplication) error

	// ListApplications returns applications, newest first. An empty
	// templateID returns all applications.
	ListApplications(ctx context.Context, templateID string) ([]model.TemplateApplication, error)

	// ListBACnetEquipment returns all discovered equipment records.
	ListBACnetEquipment(ctx context.Context) ([]model.BACnetEquipment, error)

	// SaveBACnetEquipment inserts or replaces a discovered equipment record.
	SaveBACnetEquipment(ctx context.Context, e model.BACnetEquipment) error

	// ListCxAlloyEquipment returns all catalog equipment records.
	ListCxAlloyEquipment(ctx context.Context) ([]model.CxAlloyEquipment, error)

	// SaveCxAlloyEquipment inserts or replaces a catalog equipment record.
	SaveCxAlloyEquipment(ctx context.Context, e model.CxAlloyEquipment) error

	// SaveMappingResult persists every match of one autoMap run
	// atomically: either all of result's exact and suggested matches are
	// recorded, or none are.
	SaveMappingResult(ctx context.Context, result model.AutoMappingResult) error

	// ListMappings returns all recorded mapping matches.
	ListMappings(ctx context.Context) ([]model.AutoMappingMatch, error)
}
