// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// Region identifiers known to the ledger. A region id selects which account a
// session authenticates as or which account a transfer targets.
const (
	RegionCalgary   int32 = 0
	RegionNewYork   int32 = 1
	RegionSingapore int32 = 2
)

var regionNames = map[int32]string{
	RegionCalgary:   "Calgary",
	RegionNewYork:   "New York",
	RegionSingapore: "Singapore",
}

// Regions returns the known region ids in ascending order.
func Regions() []int32 {
	return []int32{RegionCalgary, RegionNewYork, RegionSingapore}
}

// RegionName returns a display name for id. Unknown ids are rendered as
// "region #N".
func RegionName(id int32) string {
	if name, ok := regionNames[id]; ok {
		return name
	}
	return fmt.Sprintf("region #%d", id)
}
