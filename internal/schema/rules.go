// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package schema

import "regexp"

// SupportedAPIVersions lists the plugin API versions the host accepts.
var SupportedAPIVersions = []string{"1.0"}

// Categories is the closed set of marketplace categories.
var Categories = []string{
	"audio", "integration", "interface", "utility", "theme",
	"visualization", "social", "streaming", "lyrics", "metadata",
}

// Permissions is the closed set of capabilities a plugin may request.
var Permissions = []string{
	"audio.playback", "audio.metadata", "network.http", "network.websocket",
	"filesystem.read", "filesystem.write", "system.notifications",
	"ui.overlay", "ui.sidebar", "config.read", "config.write",
}

// CommonLicenses are SPDX identifiers accepted without a warning.
var CommonLicenses = []string{"MIT", "Apache-2.0", "GPL-3.0", "BSD-3-Clause", "ISC", "MPL-2.0"}

// RecommendedFields are optional fields whose absence produces a warning.
var RecommendedFields = []string{"category", "tags", "license", "homepage", "repository"}

var requiredFields = []string{"id", "name", "description", "version", "author", "api_version"}

// AssetFields are the optional string paths inside "assets".
var AssetFields = []string{"icon", "screenshot", "banner"}

const (
	minIDLength          = 3
	maxIDLength          = 50
	maxNameLength        = 100
	minDescriptionLength = 10
	maxDescriptionLength = 500
	maxAuthorNameLength  = 100
	maxTags              = 10
)

var (
	versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9-]+)?$`)
	// idPattern also applies to tags.
	idPattern    = regexp.MustCompile(`^[a-z0-9-]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)
