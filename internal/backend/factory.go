// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

// New creates a backend API implementation for the given base URL.
func New(baseURL string, endpoints Endpoints) API {
	return newHTTP(baseURL, endpoints)
}
