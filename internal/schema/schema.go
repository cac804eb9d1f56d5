// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

// Package schema applies the marketplace's business rules to a parsed
// manifest: formats, ranges, allow-lists and cross-field checks. Rule
// violations are errors; missing or unusual metadata only produces
// warnings.
package schema

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"

	"github.com/aurras/marketplace/internal/manifest"
)

// Result is the outcome of Validate. Warnings never affect Valid.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate checks v against the marketplace manifest contract. It re-checks
// the mandatory fields so it can be used without the integrity pass; if any
// is missing nothing else is checked.
func Validate(v any) Result {
	data, ok := v.(map[string]any)
	if !ok {
		return Result{Errors: []string{"Manifest data is missing or not an object"}}
	}

	var missing []string
	for _, field := range requiredFields {
		if value, ok := data[field]; !ok || value == nil {
			missing = append(missing, fmt.Sprintf("Required field '%s' is missing", field))
		}
	}
	if len(missing) > 0 {
		return Result{Errors: missing}
	}

	c := &checker{data: data}
	c.checkVersion()
	c.checkAPIVersion()
	c.checkID()
	c.checkName()
	c.checkDescription()
	c.checkAuthor()
	c.checkCategory()
	c.checkTags()
	c.checkURL("homepage", "Homepage")
	c.checkURL("repository", "Repository")
	c.checkLicense()
	c.checkDependencies()
	c.checkPermissions()
	c.checkAssets()
	c.checkRecommended()

	return Result{
		Valid:    len(c.errors) == 0,
		Errors:   c.errors,
		Warnings: c.warnings,
	}
}

type checker struct {
	data     map[string]any
	errors   []string
	warnings []string
}

func (c *checker) errorf(format string, args ...any) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

func (c *checker) warnf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// str returns a mandatory string field, recording an error if it has
// another type.
func (c *checker) str(field string) (string, bool) {
	s, ok := c.data[field].(string)
	if !ok {
		c.errorf("Field '%s' must be a string, got '%s'", field, manifest.KindOf(c.data[field]))
	}
	return s, ok
}

func (c *checker) checkVersion() {
	version, ok := c.str("version")
	if ok && !versionPattern.MatchString(version) {
		c.errorf("Version '%s' must follow semantic versioning (e.g., 1.0.0, 2.1.3-beta)", version)
	}
}

func (c *checker) checkAPIVersion() {
	apiVersion, ok := c.str("api_version")
	if ok && !slices.Contains(SupportedAPIVersions, apiVersion) {
		c.errorf("API version '%s' is not supported. Valid versions: %s",
			apiVersion, strings.Join(SupportedAPIVersions, ", "))
	}
}

func (c *checker) checkID() {
	id, ok := c.str("id")
	if !ok {
		return
	}
	if !idPattern.MatchString(id) {
		c.errorf("Plugin ID '%s' must contain only lowercase letters, numbers, and hyphens", id)
	}
	if n := utf8.RuneCountInString(id); n < minIDLength || n > maxIDLength {
		c.errorf("Plugin ID must be between %d-%d characters", minIDLength, maxIDLength)
	}
}

func (c *checker) checkName() {
	name, ok := c.str("name")
	if !ok {
		return
	}
	if n := utf8.RuneCountInString(name); n < 1 || n > maxNameLength {
		c.errorf("Plugin name must be between 1-%d characters", maxNameLength)
	}
}

func (c *checker) checkDescription() {
	desc, ok := c.str("description")
	if !ok {
		return
	}
	n := utf8.RuneCountInString(desc)
	if n < minDescriptionLength {
		c.errorf("Description must be at least %d characters long", minDescriptionLength)
	}
	if n > maxDescriptionLength {
		c.errorf("Description must be no more than %d characters", maxDescriptionLength)
	}
}

func (c *checker) checkAuthor() {
	author, ok := c.data["author"].(map[string]any)
	name, named := author["name"].(string)
	if !ok || !named || name == "" {
		c.errorf("Author must be an object with a 'name' field")
		return
	}

	if n := utf8.RuneCountInString(name); n < 1 || n > maxAuthorNameLength {
		c.errorf("Author name must be between 1-%d characters", maxAuthorNameLength)
	}

	if email := author["email"]; manifest.Truthy(email) {
		s, ok := email.(string)
		if !ok || !emailPattern.MatchString(s) {
			c.errorf("Author email '%v' is not a valid email address", email)
		}
	}
}

func (c *checker) checkCategory() {
	category := c.data["category"]
	if !manifest.Truthy(category) {
		c.warnf("Category is not specified - this will improve plugin discoverability")
		return
	}
	s, ok := category.(string)
	if !ok || !slices.Contains(Categories, s) {
		c.errorf("Category '%v' is not valid. Valid categories: %s", category, strings.Join(Categories, ", "))
	}
}

func (c *checker) checkTags() {
	value := c.data["tags"]
	if !manifest.Truthy(value) {
		c.warnf("Tags are not specified - adding tags will improve plugin discoverability")
		return
	}

	tags, ok := value.([]any)
	if !ok {
		c.errorf("Tags must be an array")
		return
	}

	if len(tags) > maxTags {
		c.errorf("Too many tags. Maximum %d tags allowed", maxTags)
	}

	invalid := false
	seen := make(map[string]struct{}, len(tags))
	duplicate := false
	for _, tag := range tags {
		s, ok := tag.(string)
		if !ok || !idPattern.MatchString(s) {
			invalid = true
		}
		if !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			duplicate = true
		}
		seen[s] = struct{}{}
	}

	if invalid {
		c.errorf("Tags must contain only lowercase letters, numbers, and hyphens")
	}
	if duplicate {
		c.warnf("Duplicate tags found - only unique tags should be used")
	}
}

func (c *checker) checkURL(field, label string) {
	value := c.data[field]
	if !manifest.Truthy(value) {
		return
	}
	s, ok := value.(string)
	if !ok || !isURL(s) {
		c.errorf("%s '%v' is not a valid URL", label, value)
	}
}

// isURL reports whether s is an absolute URL. Reachability is not checked.
func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

func (c *checker) checkLicense() {
	license := c.data["license"]
	if !manifest.Truthy(license) {
		c.warnf("License is not specified - this is important for legal clarity")
		return
	}
	s, ok := license.(string)
	if !ok || !slices.Contains(CommonLicenses, s) {
		c.warnf("License '%v' is not a common SPDX identifier", license)
	}
}

func (c *checker) checkDependencies() {
	value := c.data["dependencies"]
	if !manifest.Truthy(value) {
		return
	}
	deps, ok := value.(map[string]any)
	if !ok {
		c.errorf("Dependencies must be an object")
		return
	}

	for _, field := range []string{"python", "aurras"} {
		v := deps[field]
		if !manifest.Truthy(v) {
			continue
		}
		s, ok := v.(string)
		if !ok {
			c.errorf("dependencies.%s must be a string", field)
			continue
		}
		if _, err := semver.NewConstraint(s); err != nil {
			c.warnf("dependencies.%s '%s' is not a valid version constraint", field, s)
		}
	}

	packages := deps["packages"]
	if !manifest.Truthy(packages) {
		return
	}
	items, ok := packages.([]any)
	if !ok {
		c.errorf("dependencies.packages must be an array")
		return
	}
	for _, item := range items {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			c.errorf("All package dependencies must be non-empty strings")
			return
		}
	}
}

func (c *checker) checkPermissions() {
	value := c.data["permissions"]
	if !manifest.Truthy(value) {
		return
	}
	perms, ok := value.([]any)
	if !ok {
		c.errorf("Permissions must be an array")
		return
	}

	var invalid []string
	for _, perm := range perms {
		s, ok := perm.(string)
		if !ok || !slices.Contains(Permissions, s) {
			invalid = append(invalid, fmt.Sprint(perm))
		}
	}
	if len(invalid) > 0 {
		c.errorf("Invalid permissions: %s. Valid permissions: %s",
			strings.Join(invalid, ", "), strings.Join(Permissions, ", "))
	}
}

func (c *checker) checkAssets() {
	value := c.data["assets"]
	if !manifest.Truthy(value) {
		return
	}
	assets, ok := value.(map[string]any)
	if !ok {
		c.errorf("Assets must be an object")
		return
	}
	for _, field := range AssetFields {
		if v := assets[field]; manifest.Truthy(v) {
			if _, ok := v.(string); !ok {
				c.errorf("assets.%s must be a string if provided", field)
			}
		}
	}
}

// checkRecommended overlaps with the category, tags and license warnings
// above; both are reported.
func (c *checker) checkRecommended() {
	for _, field := range RecommendedFields {
		if !manifest.Truthy(c.data[field]) {
			c.warnf("Recommended field '%s' is missing", field)
		}
	}
}
