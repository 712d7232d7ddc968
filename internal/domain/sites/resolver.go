package sites

import (
	"errors"
	"strconv"
	"strings"

	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/apperr"

	"gorm.io/gorm"
)

/*
	Site resolver
	-------------
	Every URL shape the storefront supports funnels through Resolve:

	  /{slug}/...              -> Ref{Slug}
	  /{id}/{slug}/...         -> Ref{ID, Slug, HasID}
	  /preview/sites/{id}/...  -> Ref{ID, HasID}

	One resolver means slug-redirect behavior cannot diverge per shape.
*/

// Ref is one parsed URL shape pointing at a site.
type Ref struct {
	ID    uint
	Slug  string
	HasID bool

	// SubPath is the path after the mount (e.g. "/cart"), preserved
	// verbatim when a stale slug forces a redirect.
	SubPath string
}

// Resolution is the canonical answer for a Ref.
type Resolution struct {
	Site  Site
	Mount Mount

	// Unpublished is set when the site resolved but is not servable to
	// anonymous storefront traffic. Render layers show a notice instead
	// of content on public mounts.
	Unpublished bool

	// RedirectTo is non-empty when the supplied slug differs from the
	// stored one. The caller must 302 there instead of rendering.
	RedirectTo string
}

// Resolve maps a Ref to the canonical site.
//
// Slug-only lookups never fall back to an id lookup; a dead slug is a 404.
func Resolve(db *gorm.DB, ref Ref) (*Resolution, error) {
	var site Site
	var mount Mount

	switch {
	case ref.HasID && ref.Slug != "":
		mount = MountIDSlug
		if err := db.First(&site, "id = ?", ref.ID).Error; err != nil {
			return nil, siteLookupErr(err)
		}
	case ref.HasID:
		mount = MountPreview
		if err := db.First(&site, "id = ?", ref.ID).Error; err != nil {
			return nil, siteLookupErr(err)
		}
	case ref.Slug != "":
		mount = MountSlug
		err := db.First(&site, "slug = ? AND status <> ?", ref.Slug, StatusArchived).Error
		if err != nil {
			return nil, siteLookupErr(err)
		}
	default:
		return nil, apperr.ErrValidation
	}

	if site.IsArchived() {
		return nil, apperr.ErrNotFound
	}

	res := &Resolution{
		Site:        site,
		Mount:       mount,
		Unpublished: !site.IsPublished(),
	}

	// Stale slug in an {id, slug} shape: point at the canonical path and
	// keep whatever came after the mount.
	if mount == MountIDSlug && ref.Slug != site.Slug {
		res.RedirectTo = BasePath(site, MountIDSlug) + ref.SubPath
	}

	return res, nil
}

func siteLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return err
}

// ParsePath splits a raw storefront path into a Ref plus the sub-path.
// It recognizes the three supported shapes and nothing else.
func ParsePath(path string) (Ref, error) {
	p := strings.TrimSuffix(path, "/")
	if !strings.HasPrefix(p, "/") {
		return Ref{}, apperr.ErrValidation
	}
	segs := splitPath(p)
	if len(segs) == 0 {
		return Ref{}, apperr.ErrValidation
	}

	// /preview/sites/{id}/...
	if segs[0] == "preview" {
		if len(segs) < 3 || segs[1] != "sites" {
			return Ref{}, apperr.ErrValidation
		}
		id, err := strconv.ParseUint(segs[2], 10, 32)
		if err != nil {
			return Ref{}, apperr.ErrValidation
		}
		return Ref{ID: uint(id), HasID: true, SubPath: joinPath(segs[3:])}, nil
	}

	// /{id}/{slug}/...
	if allDigits.MatchString(segs[0]) {
		id, err := strconv.ParseUint(segs[0], 10, 32)
		if err != nil {
			return Ref{}, apperr.ErrValidation
		}
		if len(segs) < 2 {
			return Ref{}, apperr.ErrValidation
		}
		return Ref{ID: uint(id), Slug: segs[1], HasID: true, SubPath: joinPath(segs[2:])}, nil
	}

	// /{slug}/...
	return Ref{Slug: segs[0], SubPath: joinPath(segs[1:])}, nil
}

func splitPath(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func joinPath(segs []string) string {
	if len(segs) == 0 {
		return ""
	}
	return "/" + strings.Join(segs, "/")
}
