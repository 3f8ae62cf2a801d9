package model

import (
	"encoding/json"
)

// Image identifies a badge's icon.
type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Entity is an organization that issues badges.
type Entity struct {
	Type                           string `json:"type,omitempty"`
	ID                             string `json:"id,omitempty"`
	Name                           string `json:"name"`
	URL                            string `json:"url,omitempty"`
	VanityURL                      string `json:"vanity_url,omitempty"`
	InternationalizeBadgeTemplates bool   `json:"internationalize_badge_templates,omitempty"`
	ShareToZipRecruiter            bool   `json:"share_to_ziprecruiter,omitempty"`
	Verified                       bool   `json:"verified,omitempty"`
}

// IssuerEntity links an entity to a badge with a role label.
type IssuerEntity struct {
	Label   string  `json:"label,omitempty"`
	Primary bool    `json:"primary"`
	Entity  *Entity `json:"entity,omitempty"`
}

// Issuer describes who granted a badge.
type Issuer struct {
	Summary  string          `json:"summary,omitempty"`
	Entities []*IssuerEntity `json:"entities,omitempty"`
}

// Skill is a skill tag attached to a badge.
type Skill struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	VanitySlug string `json:"vanity_slug,omitempty"`
}

// Activity is one step required to earn a badge.
type Activity struct {
	ID                      string  `json:"id"`
	ActivityType            string  `json:"activity_type,omitempty"`
	RequiredBadgeTemplateID *string `json:"required_badge_template_id"`
	Title                   string  `json:"title"`
	URL                     *string `json:"url"`
}

// Badge is a single credential record.
//
// Only Name, Level, TypeCategory and Cost take part in filtering. The
// remaining fields are carried through for display and export.
type Badge struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Level            string  `json:"level"`
	TypeCategory     string  `json:"type_category"`
	Cost             Cost    `json:"cost"`
	EarnThisBadgeURL *string `json:"earn_this_badge_url"`
	Image            *Image  `json:"image,omitempty"`

	VanitySlug                      string  `json:"vanity_slug,omitempty"`
	TimeToEarn                      *string `json:"time_to_earn,omitempty"`
	GlobalActivityURL               string  `json:"global_activity_url,omitempty"`
	ImageURLField                   string  `json:"image_url,omitempty"`
	URL                             string  `json:"url,omitempty"`
	EnableEarnThisBadge             bool    `json:"enable_earn_this_badge,omitempty"`
	EnableDetailAttributeVisibility bool    `json:"enable_detail_attribute_visibility,omitempty"`
	ShowBadgeLMI                    bool    `json:"show_badge_lmi,omitempty"`
	ShowSkillTagLinks               bool    `json:"show_skill_tag_links,omitempty"`
	Translatable                    bool    `json:"translatable,omitempty"`

	Issuer       *Issuer           `json:"issuer,omitempty"`
	Skills       []*Skill          `json:"skills,omitempty"`
	Activities   []*Activity       `json:"badge_template_activities,omitempty"`
	Alignments   []json.RawMessage `json:"alignments,omitempty"`
	Endorsements []json.RawMessage `json:"endorsements,omitempty"`
}

// ImageURL returns the icon URL, or "" when the badge has no image. The
// top-level image_url field is used when the nested image is missing.
func (b *Badge) ImageURL() string {
	if b.Image != nil && b.Image.URL != "" {
		return b.Image.URL
	}
	return b.ImageURLField
}

// EarnURL returns the "earn this badge" link, or "".
func (b *Badge) EarnURL() string {
	if b.EarnThisBadgeURL == nil {
		return ""
	}
	return *b.EarnThisBadgeURL
}

// IssuerName returns the name of the primary issuing entity. When no entity
// is flagged primary the first named entity is used. Returns "" when the
// badge carries no issuer data.
func (b *Badge) IssuerName() string {
	if b.Issuer == nil {
		return ""
	}
	var fallback string
	for _, ie := range b.Issuer.Entities {
		if ie == nil || ie.Entity == nil || ie.Entity.Name == "" {
			continue
		}
		if ie.Primary {
			return ie.Entity.Name
		}
		if fallback == "" {
			fallback = ie.Entity.Name
		}
	}
	return fallback
}
