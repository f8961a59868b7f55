// ABOUTME: Workspace entities resolved from the remote document service
// ABOUTME: Snapshots of remote objects: opaque ID, display title, URL
package models

// Database is a remote collection that can parent pages
type Database struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Page is a remote document page
type Page struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}
