// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package model

// BACnetEquipment is a discovered piece of field equipment, the "source"
// side of an auto-mapping run.
type BACnetEquipment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Location string `json:"location,omitempty"`
}

// CxAlloyEquipment is a catalog entry in the destination commissioning
// database, the "target" side of an auto-mapping run.
type CxAlloyEquipment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Location string `json:"location,omitempty"`
}

// AutoMappingMatch pairs one BACnetEquipment with one CxAlloyEquipment.
type AutoMappingMatch struct {
	BACnetEquipmentID  string    `json:"bacnetEquipmentId"`
	CxAlloyEquipmentID string    `json:"cxAlloyEquipmentId"`
	Confidence         float64   `json:"confidence"`
	MatchType          MatchType `json:"matchType"`
	Reasons            []string  `json:"reasons"`
}

// AutoMappingStats summarizes one autoMap run.
type AutoMappingStats struct {
	TotalSources         int   `json:"totalSources"`
	TotalTargets         int   `json:"totalTargets"`
	ExactCount           int   `json:"exactCount"`
	SuggestedCount       int   `json:"suggestedCount"`
	UnmatchedSourceCount int   `json:"unmatchedSourceCount"`
	UnmatchedTargetCount int   `json:"unmatchedTargetCount"`
	ElapsedMs            int64 `json:"elapsedMs"`
}

// AutoMappingResult is the outcome of one autoMap call. Every source
// equipment appears in exactly one of {Exact, Suggested, UnmatchedSource};
// each target equipment appears in at most one match (§3 invariant).
type AutoMappingResult struct {
	Exact           []AutoMappingMatch `json:"exact"`
	Suggested       []AutoMappingMatch `json:"suggested"`
	UnmatchedSource []BACnetEquipment  `json:"unmatchedSource"`
	UnmatchedTarget []CxAlloyEquipment `json:"unmatchedTarget"`
	Stats           AutoMappingStats   `json:"stats"`
}
