// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"net/url"
	"regexp"

	"github.com/pdiddy/lab-console/pkg/types"
)

// titleTypePattern matches the "(type)" suffix a composite display title
// carries, for suggestions that lost their structured type in transit.
var titleTypePattern = regexp.MustCompile(`\((publication|research|program|event)\)\s*$`)

// TypeFromTitle recovers the entity type from a composite display title.
// Titles without a recognizable suffix default to publication.
func TypeFromTitle(title string) types.EntityType {
	m := titleTypePattern.FindStringSubmatch(title)
	if m == nil {
		return types.TypePublication
	}
	return types.EntityType(m[1])
}

// RouteFor returns the console route for a suggestion. Publications and
// events route to a detail page; research and programs route to their
// management page with the record preselected.
func RouteFor(s types.SearchSuggestion) string {
	entity := s.Type
	if entity == "" {
		entity = TypeFromTitle(s.Title)
	}
	switch entity {
	case types.TypeResearch:
		return "/manage-research?selected=" + url.QueryEscape(s.ID)
	case types.TypeProgram:
		return "/manage-programs?selected=" + url.QueryEscape(s.ID)
	case types.TypeEvent:
		return "/event/" + url.PathEscape(s.ID)
	default:
		return "/publication/" + url.PathEscape(s.ID)
	}
}
