package myhttp

import (
	"fmt"
	"os"
)

// GuessHostnameWithScheme returns the public base url of this service, used as push endpoint
// for subscriptions. PUBLIC_URL wins; on App Engine the default appspot hostname is assumed.
func GuessHostnameWithScheme() string {
	if url := os.Getenv("PUBLIC_URL"); url != "" {
		return url
	}
	if projectID := os.Getenv("GOOGLE_CLOUD_PROJECT"); projectID != "" {
		return fmt.Sprintf("https://%s.appspot.com", projectID)
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return fmt.Sprintf("http://localhost:%s", port)
}
