// Package content holds the portfolio data rendered by the site: profile,
// experience, education, skills and coding statistics. The data lives in an
// embedded YAML file and is read once at startup.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var portfolioYAML []byte

type Profile struct {
	Name        string `yaml:"name" json:"name"`
	Initials    string `yaml:"initials" json:"initials"`
	Headline    string `yaml:"headline" json:"headline"`
	Focus       string `yaml:"focus" json:"focus"`
	Tagline     string `yaml:"tagline" json:"tagline"`
	Email       string `yaml:"email" json:"email"`
	Phone       string `yaml:"phone" json:"phone"`
	LinkedIn    string `yaml:"linkedin" json:"linkedin"`
	Location    string `yaml:"location" json:"location"`
	Description string `yaml:"description" json:"description"`
}

type NavItem struct {
	Label string `yaml:"label" json:"label"`
	ID    string `yaml:"id" json:"id"`
}

type Experience struct {
	Title        string   `yaml:"title" json:"title"`
	Company      string   `yaml:"company" json:"company"`
	Location     string   `yaml:"location" json:"location"`
	Period       string   `yaml:"period" json:"period"`
	Achievements []string `yaml:"achievements" json:"achievements"`
}

type Education struct {
	Degree      string `yaml:"degree" json:"degree"`
	Institution string `yaml:"institution" json:"institution"`
	Location    string `yaml:"location" json:"location,omitempty"`
	Period      string `yaml:"period" json:"period"`
	Details     string `yaml:"details" json:"details"`
}

type SkillCategory struct {
	Category string   `yaml:"category" json:"category"`
	Skills   []string `yaml:"skills" json:"skills"`
}

// CodingProfile is a competitive programming account. Zero values mean the
// platform does not report that statistic.
type CodingProfile struct {
	Platform    string `yaml:"platform" json:"platform"`
	Username    string `yaml:"username" json:"username"`
	TotalSolved int    `yaml:"total_solved" json:"totalSolved,omitempty"`
	Score       int    `yaml:"score" json:"score,omitempty"`
	Ranking     int    `yaml:"ranking" json:"ranking,omitempty"`
	Stars       int    `yaml:"stars" json:"stars,omitempty"`
	Contests    int    `yaml:"contests" json:"contests,omitempty"`
	ProfileURL  string `yaml:"profile_url" json:"profileUrl"`
	Badge       string `yaml:"badge" json:"badge,omitempty"`
}

type PracticeArea struct {
	Title  string   `yaml:"title" json:"title"`
	Level  int      `yaml:"level" json:"level"`
	Skills []string `yaml:"skills" json:"skills"`
}

type LeetCodeStats struct {
	Username           string  `yaml:"username" json:"username"`
	TotalSolved        int     `yaml:"total_solved" json:"totalSolved"`
	EasySolved         int     `yaml:"easy_solved" json:"easySolved"`
	MediumSolved       int     `yaml:"medium_solved" json:"mediumSolved"`
	HardSolved         int     `yaml:"hard_solved" json:"hardSolved"`
	Ranking            int     `yaml:"ranking" json:"ranking,omitempty"`
	AcceptanceRate     float64 `yaml:"acceptance_rate" json:"acceptanceRate,omitempty"`
	ContributionPoints int     `yaml:"contribution_points" json:"contributionPoints,omitempty"`
}

type TechStack struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

type ArchitectureStep struct {
	Step        int    `yaml:"step" json:"step"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// ContactItem is one entry of the contact section.
type ContactItem struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Href     string `json:"href,omitempty"`
	External bool   `json:"external,omitempty"`
}

// Portfolio is the full set of page data.
type Portfolio struct {
	Profile        Profile            `yaml:"profile" json:"profile"`
	About          string             `yaml:"about" json:"about"`
	Nav            []NavItem          `yaml:"nav" json:"nav"`
	Experience     []Experience       `yaml:"experience" json:"experience"`
	Education      []Education        `yaml:"education" json:"education"`
	Skills         []SkillCategory    `yaml:"skills" json:"skills"`
	CodingProfiles []CodingProfile    `yaml:"coding_profiles" json:"codingProfiles"`
	Practice       []PracticeArea     `yaml:"practice" json:"practice"`
	LeetCode       LeetCodeStats      `yaml:"leetcode" json:"leetcode"`
	Stack          []TechStack        `yaml:"stack" json:"stack"`
	Architecture   []ArchitectureStep `yaml:"architecture" json:"architecture"`
}

// Load parses the embedded portfolio data.
func Load() (*Portfolio, error) {
	return Parse(portfolioYAML)
}

// Parse decodes and validates portfolio YAML.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode portfolio: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks that every record is well formed.
func (p *Portfolio) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Profile.Name) == "" {
		errs = append(errs, errors.New("profile: name is required"))
	}
	for i, e := range p.Experience {
		if e.Title == "" || e.Company == "" || e.Period == "" {
			errs = append(errs, fmt.Errorf("experience[%d]: title, company and period are required", i))
		}
	}
	for i, e := range p.Education {
		if e.Degree == "" || e.Institution == "" {
			errs = append(errs, fmt.Errorf("education[%d]: degree and institution are required", i))
		}
	}
	for i, s := range p.Skills {
		if s.Category == "" || len(s.Skills) == 0 {
			errs = append(errs, fmt.Errorf("skills[%d]: category and at least one skill are required", i))
		}
	}
	for i, c := range p.CodingProfiles {
		if c.Platform == "" || c.ProfileURL == "" {
			errs = append(errs, fmt.Errorf("coding_profiles[%d]: platform and profile_url are required", i))
		}
		if c.TotalSolved < 0 || c.Score < 0 || c.Ranking < 0 || c.Stars < 0 || c.Contests < 0 {
			errs = append(errs, fmt.Errorf("coding_profiles[%d]: statistics must not be negative", i))
		}
	}
	for i, a := range p.Practice {
		if a.Level < 0 || a.Level > 100 {
			errs = append(errs, fmt.Errorf("practice[%d]: level %d outside 0..100", i, a.Level))
		}
	}
	for i, n := range p.Nav {
		if n.Label == "" || n.ID == "" {
			errs = append(errs, fmt.Errorf("nav[%d]: label and id are required", i))
		}
	}
	return errors.Join(errs...)
}

// ContactItems lists the ways to reach the profile owner.
func (p *Portfolio) ContactItems() []ContactItem {
	var items []ContactItem
	if p.Profile.Email != "" {
		items = append(items, ContactItem{Label: "Email", Value: p.Profile.Email, Href: "mailto:" + p.Profile.Email})
	}
	if p.Profile.Phone != "" {
		items = append(items, ContactItem{Label: "Phone", Value: p.Profile.Phone, Href: "tel:" + strings.ReplaceAll(p.Profile.Phone, " ", "")})
	}
	if p.Profile.LinkedIn != "" {
		display := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(p.Profile.LinkedIn, "https://"), "www."), "/")
		items = append(items, ContactItem{Label: "LinkedIn", Value: display, Href: p.Profile.LinkedIn, External: true})
	}
	if p.Profile.Location != "" {
		items = append(items, ContactItem{Label: "Location", Value: p.Profile.Location})
	}
	return items
}

// AggregateStats summarises coding profiles across platforms.
type AggregateStats struct {
	TotalProblemsSolved int `json:"totalProblemsSolved"`
	TotalScore          int `json:"totalScore"`
	TotalStars          int `json:"totalStars"`
	TotalContests       int `json:"totalContests"`
	AverageRanking      int `json:"averageRanking"`
	BestRanking         int `json:"bestRanking"`
	PlatformsCount      int `json:"platformsCount"`
}

// Aggregate computes totals across coding profiles. Rankings are averaged
// over the profiles that report one; both ranking fields are 0 when none do.
func (p *Portfolio) Aggregate() AggregateStats {
	s := AggregateStats{PlatformsCount: len(p.CodingProfiles)}

	var rankSum, ranked int
	for _, c := range p.CodingProfiles {
		s.TotalProblemsSolved += c.TotalSolved
		s.TotalScore += c.Score
		s.TotalStars += c.Stars
		s.TotalContests += c.Contests
		if c.Ranking > 0 {
			rankSum += c.Ranking
			ranked++
			if s.BestRanking == 0 || c.Ranking < s.BestRanking {
				s.BestRanking = c.Ranking
			}
		}
	}
	if ranked > 0 {
		s.AverageRanking = int(math.Round(float64(rankSum) / float64(ranked)))
	}
	return s
}
