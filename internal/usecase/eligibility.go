package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Kullendorff/systembolaget/internal/domain"
)

// volumeRegex extracts a leading decimal number and unit from volume text
// like "750 ml", "375ml", "1.5 l" or "0.75l".
var volumeRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(ml|l)`)

// bulkVolumeML is the point above which packaging is treated as bulk even
// when the box flag cannot be derived from the text.
const bulkVolumeML = 1500

// PackagingPolicy decides which packaging sizes qualify for search results.
// The two deployed profiles disagreed on the upper bound, so both bounds
// and the box exclusion are explicit knobs instead of constants.
type PackagingPolicy struct {
	// MinVolumeML excludes small bottles; anything parsing below it is out.
	MinVolumeML float64
	// MaxVolumeML caps the qualifying volume; 0 means unbounded.
	MaxVolumeML float64
	// ExcludeBox additionally drops bag-in-box style packaging.
	ExcludeBox bool
}

// DefaultPackagingPolicy is the baseline profile: standard bottles of
// 750 ml and up, no upper bound.
func DefaultPackagingPolicy() PackagingPolicy {
	return PackagingPolicy{MinVolumeML: 750}
}

// StrictPackagingPolicy caps at a single liter and drops box packaging.
func StrictPackagingPolicy() PackagingPolicy {
	return PackagingPolicy{MinVolumeML: 750, MaxVolumeML: 1000, ExcludeBox: true}
}

// ParseVolumeMilliliters extracts the volume in milliliters from a free-form
// volume description. Unparsable text yields 0.
func ParseVolumeMilliliters(volumeText string) float64 {
	text := strings.ToLower(volumeText)
	text = strings.ReplaceAll(text, " ", "")

	match := volumeRegex.FindStringSubmatch(text)
	if match == nil {
		return 0
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}

	if match[2] == "l" {
		return value * 1000
	}
	return value
}

// EligiblePackaging reports whether the volume text describes a qualifying
// packaging size under the policy. Unparsable volumes never qualify.
func (p PackagingPolicy) EligiblePackaging(volumeText string) bool {
	volume := ParseVolumeMilliliters(volumeText)
	if volume < p.MinVolumeML {
		return false
	}
	if p.MaxVolumeML > 0 && volume > p.MaxVolumeML {
		return false
	}
	if p.ExcludeBox && isBoxPackaging(volumeText, volume) {
		return false
	}
	return true
}

// Eligible is the baseline predicate every search path applies: all four
// unavailability flags false and a qualifying packaging size.
func (p PackagingPolicy) Eligible(product *domain.Product) bool {
	return product.IsAvailable() && p.EligiblePackaging(product.VolumeText)
}

// isBoxPackaging treats anything named as a box, or over the bulk volume
// threshold, as bag-in-box style packaging.
func isBoxPackaging(volumeText string, volumeML float64) bool {
	if volumeML > bulkVolumeML {
		return true
	}
	return strings.Contains(strings.ToLower(volumeText), "box")
}
