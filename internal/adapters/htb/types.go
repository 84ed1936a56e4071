package htb

import (
	"encoding/json"
	"strings"

	"ctfwatch/internal/domain"
)

// siteBaseURL prefixes root-relative banner paths.
const siteBaseURL = "https://ctf.hackthebox.com"

// eventDTO is the wire shape shared by the list and detail endpoints; the
// list only reliably populates id and slug.
type eventDTO struct {
	ID               json.Number `json:"id"`
	Slug             string      `json:"slug"`
	Name             string      `json:"name"`
	OrgName          string      `json:"org_name"`
	StartsAt         string      `json:"starts_at"`
	EndsAt           string      `json:"ends_at"`
	Description      string      `json:"description"`
	LongDescription  string      `json:"long_description"`
	ShortDescription string      `json:"short_description"`
	Instructions     string      `json:"instructions"`
	JoinInstructions string      `json:"join_instructions"`
	HasCode          *bool       `json:"hasCode"`
	Banner           string      `json:"banner"`
	Logo             string      `json:"logo"`
	Avatar           string      `json:"avatar"`
	Image            string      `json:"image"`
	BannerImage      string      `json:"banner_image"`
}

func (d *eventDTO) toDetail() *domain.EventDetail {
	return &domain.EventDetail{
		ID:               d.ID.String(),
		Slug:             d.Slug,
		Name:             d.Name,
		Organizer:        d.OrgName,
		StartsAt:         parseEventTime(d.StartsAt),
		EndsAt:           parseEventTime(d.EndsAt),
		Description:      d.Description,
		LongDescription:  d.LongDescription,
		ShortDescription: d.ShortDescription,
		Instructions:     d.Instructions,
		JoinInstructions: d.JoinInstructions,
		BannerURL:        d.bannerURL(),
		Access:           d.accessFlag(),
	}
}

// accessFlag maps the nullable hasCode indicator to the tri-state flag.
// A missing value is Unknown, which downstream policy treats as Open.
func (d *eventDTO) accessFlag() domain.AccessFlag {
	switch {
	case d.HasCode == nil:
		return domain.AccessUnknown
	case *d.HasCode:
		return domain.AccessRestricted
	default:
		return domain.AccessOpen
	}
}

// bannerURL picks the first usable image field, in a fixed preference order,
// and normalizes scheme-relative and root-relative paths.
func (d *eventDTO) bannerURL() string {
	for _, v := range []string{d.Banner, d.Logo, d.Avatar, d.Image, d.BannerImage} {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		switch {
		case strings.HasPrefix(v, "http"):
			return v
		case strings.HasPrefix(v, "//"):
			return "https:" + v
		case strings.HasPrefix(v, "/"):
			return siteBaseURL + v
		}
	}
	return ""
}
