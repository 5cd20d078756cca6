package version

var (
	// These values are injected during build - DO NOT MODIFY
	Version   = "VERSION_PLACEHOLDER"
	CommitSHA = "COMMIT_PLACEHOLDER"
)

func GetVersionInfo() string {
	return "pdfcheck " + Version
}

func GetDetailedVersionInfo() string {
	return "pdfcheck\n" +
		"Version:  " + Version + "\n" +
		"Commit:   " + CommitSHA + "\n"
}

// UserAgent is the default User-Agent header sent when fetching URLs.
func UserAgent() string {
	return "pdfcheck/" + Version
}
