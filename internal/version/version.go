package version

// Version is the library release version, reported to the API in the
// User-Agent header.
const Version = "1.1.0"

// Product is the identifier sent as the first token of the User-Agent.
const Product = "is-it-spam-go"

// UserAgent returns the full User-Agent value for outbound API requests.
func UserAgent() string {
	return Product + "/" + Version
}
