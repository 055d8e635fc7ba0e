package useragent

import (
	"strings"

	"github.com/ua-parser/uap-go/uaparser"
	"go.uber.org/zap"
)

// Classifier decides whether a request comes from an automated client,
// such as a social platform's link crawler. The result only selects what
// to render, it is never an access-control decision.
type Classifier interface {
	IsAutomatedClient(userAgent string) bool
}

// crawlerMarkers is the case-insensitive substring allow-list for
// automated clients. A match on any marker classifies the client as a
// crawler; everything else is treated as a person.
var crawlerMarkers = []string{
	"bot",
	"crawler",
	"spider",
	"facebookexternalhit",
	"twitterbot",
	"whatsapp",
	"telegram",
}

// CrawlerClassifier classifies clients by User-Agent substring matching.
type CrawlerClassifier struct {
	markers []string
}

// NewCrawlerClassifier creates a classifier with the default marker list.
func NewCrawlerClassifier() *CrawlerClassifier {
	return &CrawlerClassifier{markers: crawlerMarkers}
}

// IsAutomatedClient reports whether the User-Agent matches any crawler
// marker. An empty User-Agent is treated as a person.
func (c *CrawlerClassifier) IsAutomatedClient(userAgent string) bool {
	if userAgent == "" {
		return false
	}

	ua := strings.ToLower(userAgent)
	for _, marker := range c.markers {
		if strings.Contains(ua, marker) {
			return true
		}
	}

	return false
}

// DeviceInfo is the parsed device information recorded with each click.
type DeviceInfo struct {
	DeviceType string // mobile, desktop, tablet, bot, unknown
	Browser    string // Chrome, Firefox, Safari, etc.
	OS         string // Windows, iOS, Android, etc.
	Raw        string // Original User-Agent string
}

// Parser wraps the uap-go User-Agent parser with device type detection
// for click analytics.
type Parser struct {
	parser     *uaparser.Parser
	classifier Classifier
	log        *zap.Logger
}

// NewParser creates a parser using the definitions bundled with uap-go.
func NewParser(classifier Classifier, log *zap.Logger) *Parser {
	return &Parser{
		parser:     uaparser.NewFromSaved(),
		classifier: classifier,
		log:        log,
	}
}

// ParseUserAgent parses a User-Agent string into device information.
func (p *Parser) ParseUserAgent(userAgent string) *DeviceInfo {
	if userAgent == "" {
		return &DeviceInfo{
			DeviceType: "unknown",
			Browser:    "unknown",
			OS:         "unknown",
		}
	}

	client := p.parser.Parse(userAgent)

	info := &DeviceInfo{
		Browser: formatFamily(client.UserAgent.Family),
		OS:      formatFamily(client.Os.Family),
		Raw:     userAgent,
	}
	info.DeviceType = p.deviceType(client, userAgent)

	p.log.Debug("parsed User-Agent",
		zap.String("device_type", info.DeviceType),
		zap.String("browser", info.Browser),
		zap.String("os", info.OS),
	)

	return info
}

// deviceType resolves the device class from the parsed client, falling
// back to OS-level hints when the device family is unspecific.
func (p *Parser) deviceType(client *uaparser.Client, userAgent string) string {
	if p.classifier.IsAutomatedClient(userAgent) {
		return "bot"
	}

	deviceFamily := client.Device.Family
	if deviceFamily != "" && deviceFamily != "Other" {
		if isTabletDevice(deviceFamily) {
			return "tablet"
		}
		if isMobileDevice(deviceFamily) {
			return "mobile"
		}
	}

	osFamily := client.Os.Family
	if isMobileOS(osFamily) {
		if isTabletVariant(osFamily, userAgent) {
			return "tablet"
		}
		return "mobile"
	}

	if isDesktopOS(osFamily) {
		return "desktop"
	}

	return "unknown"
}

func isMobileDevice(deviceFamily string) bool {
	return containsAny(deviceFamily, "iPhone", "Android", "BlackBerry", "Windows Phone", "Mobile", "Phone")
}

func isTabletDevice(deviceFamily string) bool {
	return containsAny(deviceFamily, "iPad", "Tablet", "Kindle", "Surface")
}

func isMobileOS(osFamily string) bool {
	return containsAny(osFamily, "iOS", "Android", "Windows Phone", "BlackBerry OS", "Firefox OS")
}

// isTabletVariant distinguishes tablets on mobile operating systems:
// iPads report iOS, and Android tablets omit the "Mobile" token.
func isTabletVariant(osFamily, userAgent string) bool {
	if strings.Contains(osFamily, "iOS") {
		return strings.Contains(userAgent, "iPad")
	}
	if strings.Contains(osFamily, "Android") {
		return !strings.Contains(userAgent, "Mobile")
	}
	return false
}

func isDesktopOS(osFamily string) bool {
	return containsAny(osFamily, "Windows", "Mac OS X", "macOS", "Linux", "Ubuntu", "Chrome OS", "FreeBSD", "OpenBSD")
}

func containsAny(s string, substrings ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrings {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

func formatFamily(family string) string {
	if family == "" || family == "Other" {
		return "unknown"
	}
	return family
}
