package marvel

// ImageNotAvailableURL is the thumbnail the API returns for characters without an image.
const ImageNotAvailableURL = "http://i.annihil.us/u/prod/marvel/i/mg/b/40/image_not_available.jpg"

// ObjectFit is an image scaling directive.
type ObjectFit string

// ObjectFitFill stretches the image to its box.
const ObjectFitFill ObjectFit = "fill"

// ResolveThumbnailStyle returns override only for the placeholder image.
// For every other URL, including "", it reports no override so the caller
// keeps its default scaling.
func ResolveThumbnailStyle(thumbnailURL string, override ObjectFit) (ObjectFit, bool) {
	if thumbnailURL == ImageNotAvailableURL {
		return override, true
	}
	return "", false
}
