package model

import "strings"

// DefaultTagTypes returns the seeded tag board: six own-team tags on the top
// row and their rival ("EC") counterparts on the bottom row.
func DefaultTagTypes() []TagType {
	return []TagType{
		{ID: "tag-salida", Key: "salida", Label: "Salida", Row: RowOwn, PreSec: 3, PostSec: 8, Order: 1},
		{ID: "tag-ataque", Key: "ataque", Label: "Ataque", Row: RowOwn, PreSec: 3, PostSec: 8, Order: 2},
		{ID: "tag-area", Key: "area", Label: "Área", Row: RowOwn, PreSec: 3, PostSec: 8, Order: 3},
		{ID: "tag-contragolpe", Key: "contragolpe", Label: "Contragolpe", Row: RowOwn, PreSec: 3, PostSec: 10, Order: 4},
		{ID: "tag-cc-at", Key: "cc_at", Label: "CC AT", Row: RowOwn, PreSec: 3, PostSec: 8, Order: 5},
		{ID: "tag-gol", Key: "gol", Label: "Gol", Row: RowOwn, PreSec: 5, PostSec: 10, Order: 6},
		{ID: "tag-bloqueo", Key: "bloqueo", Label: "Bloqueo", Row: RowRival, PreSec: 3, PostSec: 8, Order: 7},
		{ID: "tag-defensa", Key: "defensa", Label: "Defensa", Row: RowRival, PreSec: 3, PostSec: 8, Order: 8},
		{ID: "tag-area-ec", Key: "area_ec", Label: "Área EC", Row: RowRival, PreSec: 3, PostSec: 8, Order: 9},
		{ID: "tag-contragolpe-ec", Key: "contragolpe_ec", Label: "Contragolpe EC", Row: RowRival, PreSec: 3, PostSec: 10, Order: 10},
		{ID: "tag-cc-def", Key: "cc_def", Label: "CC DEF", Row: RowRival, PreSec: 3, PostSec: 8, Order: 11},
		{ID: "tag-gol-ec", Key: "gol_ec", Label: "Gol EC", Row: RowRival, PreSec: 5, PostSec: 10, Order: 12},
	}
}

// NewTagType applies creation defaults to in. maxOrder is the highest order
// among existing tag types.
func NewTagType(in TagTypeInput, maxOrder int) TagType {
	tag := TagType{
		ID:      in.ID,
		Key:     in.Key,
		Label:   in.Label,
		Row:     in.Row,
		PreSec:  in.PreSec,
		PostSec: in.PostSec,
		Order:   in.Order,
	}
	if tag.Key == "" {
		tag.Key = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(in.Label), " ", "_"))
	}
	if tag.ID == "" {
		tag.ID = "tag-" + tag.Key
	}
	if tag.Row == "" {
		tag.Row = RowOwn
	}
	if tag.PreSec == 0 {
		tag.PreSec = DefaultPreSec
	}
	if tag.PostSec == 0 {
		tag.PostSec = DefaultPostSec
	}
	if tag.Order == 0 {
		tag.Order = maxOrder + 1
	}
	return tag
}

// Apply copies the set fields of p onto tag.
func (p TagTypePatch) Apply(tag *TagType) {
	if p.Key != nil {
		tag.Key = *p.Key
	}
	if p.Label != nil {
		tag.Label = *p.Label
	}
	if p.Row != nil {
		tag.Row = *p.Row
	}
	if p.PreSec != nil {
		tag.PreSec = *p.PreSec
	}
	if p.PostSec != nil {
		tag.PostSec = *p.PostSec
	}
	if p.Order != nil {
		tag.Order = *p.Order
	}
}

// ParseRow accepts own/top and rival/bottom.
func ParseRow(s string) (Row, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "own", "top", "":
		return RowOwn, true
	case "rival", "bottom", "ec":
		return RowRival, true
	}
	return "", false
}
