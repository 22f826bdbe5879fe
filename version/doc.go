// Package version reports build version information.
//
// Set the variables at build time with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/datatable/version.Version=1.2.3 \
//	  -X github.com/ncobase/datatable/version.Branch=main \
//	  -X github.com/ncobase/datatable/version.Revision=abc123 \
//	  -X github.com/ncobase/datatable/version.BuiltAt=2024-01-05T10:00:00Z" \
//	  ./cmd/datatable
//
// Unset values fall back to the VCS stamp of the binary's build info.
//
//	info := version.GetVersionInfo()
//	fmt.Println(info)
package version
