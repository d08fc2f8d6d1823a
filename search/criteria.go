// Package search builds advanced-search query strings, the MongoDB filter
// behind them, and suggestions drawn from the static filter option lists.
package search

import (
	"net/url"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Criteria is an advanced search over data assets.
type Criteria struct {
	Query          string   `json:"q,omitempty"`
	Domains        []string `json:"domains,omitempty"`
	Types          []string `json:"types,omitempty"`
	Statuses       []string `json:"statuses,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Owners         []string `json:"owners,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

// query-string parameter for each list field
const (
	ParamQuery         = "q"
	ParamDomain        = "domain"
	ParamType          = "type"
	ParamStatus        = "status"
	ParamCertification = "certification"
	ParamOwner         = "owner"
	ParamTag           = "tag"
)

func (c Criteria) lists() []struct {
	param  string
	field  string
	values []string
} {
	return []struct {
		param  string
		field  string
		values []string
	}{
		{ParamDomain, "domain", c.Domains},
		{ParamType, "type", c.Types},
		{ParamStatus, "status", c.Statuses},
		{ParamCertification, "certification", c.Certifications},
		{ParamOwner, "owner", c.Owners},
		{ParamTag, "tags", c.Tags},
	}
}

func (c Criteria) IsEmpty() bool {
	if strings.TrimSpace(c.Query) != "" {
		return false
	}
	for _, l := range c.lists() {
		if len(l.values) > 0 {
			return false
		}
	}
	return true
}

// Values returns c as URL query values, one repeated key per list entry.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	if q := strings.TrimSpace(c.Query); q != "" {
		v.Set(ParamQuery, q)
	}
	for _, l := range c.lists() {
		for _, val := range l.values {
			if val = strings.TrimSpace(val); val != "" {
				v.Add(l.param, val)
			}
		}
	}
	return v
}

// Encode returns the query string, keys sorted.
func (c Criteria) Encode() string {
	return c.Values().Encode()
}

// ParseCriteria accepts both repeated keys and comma-separated values.
func ParseCriteria(v url.Values) Criteria {
	return Criteria{
		Query:          strings.TrimSpace(v.Get(ParamQuery)),
		Domains:        splitValues(v[ParamDomain]),
		Types:          splitValues(v[ParamType]),
		Statuses:       splitValues(v[ParamStatus]),
		Certifications: splitValues(v[ParamCertification]),
		Owners:         splitValues(v[ParamOwner]),
		Tags:           splitValues(v[ParamTag]),
	}
}

func splitValues(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Filter is the MongoDB filter for the data asset collection. Free text
// matches name, description or tags case-insensitively; list fields match
// any of their values.
func (c Criteria) Filter() bson.M {
	filter := bson.M{}
	if q := strings.TrimSpace(c.Query); q != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
			bson.M{"tags": re},
		}
	}
	for _, l := range c.lists() {
		if len(l.values) > 0 {
			filter[l.field] = bson.M{"$in": l.values}
		}
	}
	return filter
}
