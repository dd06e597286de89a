package normalize

import (
	"regexp"
	"strings"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

type categoryRule struct {
	category domain.Category
	pattern  *regexp.Regexp
}

func rule(c domain.Category, alternatives string) categoryRule {
	return categoryRule{category: c, pattern: regexp.MustCompile(`\b(?:` + alternatives + `)`)}
}

// categoryRules are tested in order against the lower-cased title; the first
// match wins. More specific device families come before the generic ones
// that share vocabulary with them (a "gaming laptop" is a laptop, a
// "security camera" is smart home gear).
var categoryRules = []categoryRule{
	rule(domain.CategoryWearables,
		`apple watch|smart ?watch|galaxy watch|fitbit|garmin|oura ring|whoop`),
	rule(domain.CategoryTablets,
		`ipad|tablet|galaxy tab|kindle|fire hd|surface pro`),
	rule(domain.CategoryLaptops,
		`laptop|notebook|macbook|chromebook|thinkpad|ultrabook|zenbook|vivobook|surface laptop|xps 1[3-7]`),
	rule(domain.CategoryPhones,
		`iphone|smartphone|cell ?phone|pixel \d|galaxy [sza]\d|galaxy z|oneplus|motorola|unlocked phone`),
	rule(domain.CategoryGaming,
		`playstation|ps5|ps4|xbox|nintendo|switch oled|steam deck|gaming|video game|controller|meta quest|oculus|vr headset`),
	rule(domain.CategoryTVs,
		`tvs?\b|television|oled|qled|roku|fire tv|chromecast|projector`),
	rule(domain.CategoryAudio,
		`headphones?|earbuds?|airpods|speakers?|soundbar|sound bar|headset|earphones?|turntable|receiver|sonos|bose|beats`),
	rule(domain.CategorySmartHome,
		`echo dot|echo show|alexa|google home|nest|smart home|smart plug|smart bulb|doorbell|thermostat|robot vacuum|roomba|security camera`),
	rule(domain.CategoryCameras,
		`camera|dslr|mirrorless|gopro|lens|camcorder|drone`),
	rule(domain.CategoryStorage,
		`ssd\b|hard drive|hdd\b|nvme|flash drive|usb drive|micro ?sd|sd card|nas\b|external drive|portable drive`),
	rule(domain.CategoryComputers,
		`desktop|pc\b|mac mini|mac studio|imac|monitor|graphics card|gpu\b|rtx \d|radeon|cpu\b|processor|motherboard|ddr[45]|router|mesh wi-?fi`),
	rule(domain.CategoryAccessories,
		`charger|cable|case\b|adapter|power bank|stand\b|mount\b|dock\b|keyboard|mouse|screen protector|hub\b|stylus|sleeve`),
}

// InferCategory maps a title onto a category, defaulting to other.
func InferCategory(title string) domain.Category {
	lower := strings.ToLower(title)
	for _, r := range categoryRules {
		if r.pattern.MatchString(lower) {
			return r.category
		}
	}
	return domain.CategoryOther
}
