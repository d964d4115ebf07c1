// Package profile manages the portfolio owner's profile: the personal data the
// terminal's section commands (about, skills, contact, ...) render.
// The profile is stored at ~/.config/termfolio/profile.json and is created via
// the interactive setup flow; without one, a sample profile is used.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Load when no profile file exists.
var ErrNotFound = errors.New("profile not found")

// Profile holds everything the portfolio shows about its owner.
type Profile struct {
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	Specialization string   `json:"specialization"`
	Location       string   `json:"location"`
	About          []string `json:"about"` // free-form bio, one entry per line

	Education  Education  `json:"education"`
	Experience Experience `json:"experience"`

	Skills         []SkillCategory `json:"skills"`
	Certifications []Certification `json:"certifications"`
	CurrentFocus   []string        `json:"current_focus"`

	Languages       Languages `json:"languages"`
	Nationality     string    `json:"nationality"`
	DrivingLicenses string    `json:"driving_licenses"`

	Email          string `json:"email"`
	Phone          string `json:"phone"`
	GitHub         string `json:"github"`          // profile URL
	GitHubUsername string `json:"github_username"` // used for the repository listing
	LinkedIn       string `json:"linkedin"`
}

// Education describes the current or most recent degree.
type Education struct {
	School     string   `json:"school"`
	Degree     string   `json:"degree"`
	Period     string   `json:"period"`
	Coursework []string `json:"coursework"`
}

// Experience describes one position.
type Experience struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Type             string   `json:"type"` // e.g. "Hybrid"
	Period           string   `json:"period"`
	Responsibilities []string `json:"responsibilities"`
}

// SkillCategory is one titled group of skills, rendered in order.
type SkillCategory struct {
	Title string `json:"title"`
	Items string `json:"items"`
}

// Certification is one certificate or course.
type Certification struct {
	Name    string `json:"name"`
	Issuer  string `json:"issuer"`
	Year    string `json:"year"`
	Level   string `json:"level,omitempty"`
	Expires string `json:"expires,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Languages lists spoken languages.
type Languages struct {
	MotherTongue string `json:"mother_tongue"`
	Other        string `json:"other"`
}

// Current returns p itself, so a plain *Profile can be handed to anything
// that accepts a live, reloadable profile.
func (p *Profile) Current() *Profile {
	return p
}

// Default returns the sample profile shown until the owner runs setup.
func Default() *Profile {
	return &Profile{
		Name:           "Jane Doe",
		Role:           "Computer Science Engineering Student",
		Specialization: "GPU Programming, High-Performance Computing, Algorithms",
		Location:       "Budapest, Hungary",
		About: []string{
			"I am a Computer Science Engineering student passionate about",
			"GPU programming, high-performance computing, and building",
			"elegant solutions to complex problems.",
		},
		Education: Education{
			School: "Budapest University of Technology and Economics (BME)",
			Degree: "Bachelor of Computer Science Engineering",
			Period: "2023 - 2027",
			Coursework: []string{
				"Algorithms & Data Structures",
				"Database Systems",
				"Hardware Security",
				"High-Performance Computing",
			},
		},
		Experience: Experience{
			Title:    "Financial Operations Analyst Intern",
			Company:  "Example Corp",
			Location: "Budapest, Hungary",
			Type:     "Hybrid",
			Period:   "Jul 2024 - Sep 2024",
			Responsibilities: []string{
				"Supported invoice and payment processes; ensured timeliness and accuracy",
				"Collaborated with cross-functional teams to maintain compliance with regulations",
				"Assisted the P2P team in report generation and ad-hoc data analysis",
			},
		},
		Skills: []SkillCategory{
			{Title: "Programming Languages:", Items: "C, C++, Go, Python, SQL"},
			{Title: "GPU & High-Performance Computing:", Items: "NVIDIA CUDA, GPU Programming, High-Performance Computing"},
			{Title: "Cloud & DevOps:", Items: "AWS, Google Cloud, CI/CD, Git"},
			{Title: "Networking:", Items: "CCNA"},
			{Title: "Databases:", Items: "MongoDB, MySQL, PostgreSQL"},
			{Title: "Tools:", Items: "Docker, LaTeX"},
		},
		Certifications: []Certification{
			{Name: "CS50x: Introduction to Computer Science", Issuer: "Harvard University", Year: "2025"},
			{Name: "Fundamentals of Accelerated Computing with CUDA C/C++", Issuer: "NVIDIA", Year: "2025", Expires: "Mar 2026"},
			{Name: "CCNA: Introduction to Networks", Issuer: "Cisco", Year: "2025", Level: "Intermediate"},
		},
		CurrentFocus: []string{
			"Developing high-performance applications with NVIDIA CUDA C/C++",
			"Expanding expertise in GPU programming and parallel computing architectures",
			"Building scalable cloud infrastructure on AWS and Google Cloud",
		},
		Languages: Languages{
			MotherTongue: "Romanian",
			Other:        "English (C1), German (B1)",
		},
		Nationality:     "Romanian",
		DrivingLicenses: "A2, B",
		Email:           "jane@example.com",
		Phone:           "+36 00 000 0000",
		GitHub:          "https://github.com/janedoe",
		GitHubUsername:  "janedoe",
		LinkedIn:        "https://www.linkedin.com/in/janedoe/",
	}
}

// ConfigDir returns the termfolio config directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "termfolio"), nil
}

// Path returns the location of the profile file.
func Path() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profile.json"), nil
}

// Exists reports whether a profile file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadFile reads a profile from path. A missing file yields ErrNotFound.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s (run 'termfolio setup' to create one)", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var prof Profile
	if err := json.Unmarshal(data, &prof); err != nil {
		return nil, fmt.Errorf("malformed profile at %s: %w", path, err)
	}
	return &prof, nil
}

// SaveFile writes prof to path atomically via a temp file + os.Rename, so a
// watcher never observes a half-written profile.
func SaveFile(path string, prof *Profile) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}
	data, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "profile-*.json.tmp")
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save profile: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
