// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package dictionary

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
)

// Version returns a deterministic content hash of the snapshot: SHA256 over
// every table's entries, sorted for stability regardless of map iteration
// order. catalogcache keys PointSignature entries by (objectName, Version())
// so a dictionary reload automatically invalidates stale cache entries
// without an explicit invalidation call: the old keys become unreachable
// and age out via the cache's TTL.
func (s *Set) Version() string {
	if s == nil {
		return "nil"
	}
	h := sha256.New()
	hashTable(h, "general", s.General)

	groups := make([]string, 0, len(s.Equipment))
	for g := range s.Equipment {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		hashTable(h, "equipment:"+g, s.Equipment[g])
	}

	groups = groups[:0]
	for g := range s.Vendor {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		hashTable(h, "vendor:"+g, s.Vendor[g])
	}

	return hex.EncodeToString(h.Sum(nil))
}

func hashTable(h io.Writer, label string, t Table) {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e := t[k]
		fmt.Fprintf(h, "%s\t%s\t%s\t%s\t%s\t%d\t%v\t%s\n", label, k, e.Acronym, e.Expansion, e.Category, e.Priority, e.Tags, e.PointFunction)
	}
}
