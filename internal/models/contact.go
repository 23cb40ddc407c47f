package models

import (
	"fmt"
	"strings"
	"unicode"
)

const avatarURLFormat = "https://picsum.photos/seed/%s/200"

type Contact struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	AvatarURL string `json:"avatar_url" yaml:"avatar_url,omitempty"`
}

// ContactDraft is what the contact form hands back on save. It carries no
// identity and no derived fields.
type ContactDraft struct {
	Name  string
	Title string
	Email string
	Phone string
}

// ContactPatch merges onto an existing contact. Nil fields are left alone.
type ContactPatch struct {
	Name      *string
	Title     *string
	Email     *string
	Phone     *string
	AvatarURL *string
}

// AvatarURL derives the display avatar for a seed.
func AvatarURL(seed string) string {
	return fmt.Sprintf(avatarURLFormat, seed)
}

func NewContact(id, avatarSeed string, draft ContactDraft) Contact {
	d := draft.Normalize()
	return Contact{
		ID:        id,
		Name:      d.Name,
		Title:     d.Title,
		Email:     d.Email,
		Phone:     d.Phone,
		AvatarURL: AvatarURL(avatarSeed),
	}
}

func (d ContactDraft) Normalize() ContactDraft {
	return ContactDraft{
		Name:  strings.TrimSpace(d.Name),
		Title: strings.TrimSpace(d.Title),
		Email: strings.TrimSpace(d.Email),
		Phone: strings.TrimSpace(d.Phone),
	}
}

// Patch turns a full form draft into a patch replacing every editable field.
func (d ContactDraft) Patch() ContactPatch {
	n := d.Normalize()
	return ContactPatch{
		Name:  &n.Name,
		Title: &n.Title,
		Email: &n.Email,
		Phone: &n.Phone,
	}
}

// Draft returns the editable fields of c, used to prefill the edit form.
func (c Contact) Draft() ContactDraft {
	return ContactDraft{
		Name:  c.Name,
		Title: c.Title,
		Email: c.Email,
		Phone: c.Phone,
	}
}

// Apply returns c with the patch merged in. ID is never touched.
func (c Contact) Apply(p ContactPatch) Contact {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.AvatarURL != nil {
		c.AvatarURL = *p.AvatarURL
	}
	return c
}

func (c Contact) Clone() Contact {
	return c
}

// Initials returns up to two upper-case letters used as a text avatar.
func (c Contact) Initials() string {
	var out []rune
	for _, word := range strings.Fields(c.Name) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				out = append(out, unicode.ToUpper(r))
				break
			}
		}
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

// Matches reports whether query is a case-insensitive substring of the
// contact's name, title or email.
func (c Contact) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), query) ||
		strings.Contains(strings.ToLower(c.Title), query) ||
		strings.Contains(strings.ToLower(c.Email), query)
}
