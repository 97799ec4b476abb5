// Package roster loads the team roster shown on the department slide.
//
// The roster is a JSON object mapping a department key to an ordered list
// of members. Every member field is optional; missing values render with
// fallback strings instead of failing.
package roster

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// Fallback strings for absent member fields.
const (
	UnknownName  = "未知姓名"
	UnknownMajor = "未知专业"
	DefaultRole  = "成员"
)

// Member is one person in a department.
type Member struct {
	Name  string `json:"name,omitempty"`
	Major string `json:"major,omitempty"`
	Role  string `json:"role,omitempty"`
}

// DisplayName returns the name or UnknownName.
func (m Member) DisplayName() string {
	if m.Name == "" {
		return UnknownName
	}
	return m.Name
}

// Initial is the first character of the name, used as the avatar.
func (m Member) Initial() string {
	if m.Name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(m.Name)
	return string(r)
}

// MajorName strips the cohort prefix ("2023级临床医学" -> "临床医学").
func (m Member) MajorName() string {
	if m.Major == "" {
		return UnknownMajor
	}
	parts := strings.Split(m.Major, "级")
	if len(parts) > 1 && parts[1] != "" {
		return parts[1]
	}
	return m.Major
}

// DisplayRole returns the role or DefaultRole.
func (m Member) DisplayRole() string {
	if m.Role == "" {
		return DefaultRole
	}
	return m.Role
}

// Roster maps department key to members. It is read-only once loaded.
type Roster map[string][]Member

// Members returns the members of dept, or nil.
func (r Roster) Members(dept string) []Member {
	return r[dept]
}

// Decode parses a roster document.
func Decode(data []byte) (Roster, error) {
	var r Roster
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding roster: %w", err)
	}
	if r == nil {
		r = Roster{}
	}
	return r, nil
}

// Department is the display metadata of a department key.
type Department struct {
	Key   string
	Name  string
	Color string
}

// Departments lists the known departments in display order.
var Departments = []Department{
	{Key: "editorial", Name: "文编部", Color: "#667eea"},
	{Key: "design", Name: "美编部", Color: "#764ba2"},
	{Key: "photo", Name: "摄影部", Color: "#4ECDC4"},
	{Key: "tech", Name: "运维部", Color: "#FF6B6B"},
	{Key: "leadership", Name: "副主编团队", Color: "#FFD700"},
}

// UnknownDepartment is returned for keys not in Departments.
var UnknownDepartment = Department{Name: "未知部门", Color: "#666666"}

// LookupDepartment returns the metadata for key.
func LookupDepartment(key string) Department {
	for _, d := range Departments {
		if d.Key == key {
			return d
		}
	}
	u := UnknownDepartment
	u.Key = key
	return u
}

// HeadCount formats a member count the way the detail card shows it.
func HeadCount(n int) string {
	return fmt.Sprintf("%d人", n)
}
