// Package siteconfig loads and validates the declarative settings of the blog:
// site identity, theme, navigation, sidebar layout and the optional widgets.
// Values are plain data; nothing here has behavior beyond validation.
package siteconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the whole site configuration document.
type Config struct {
	Consts        Consts        `yaml:"consts"`
	Site          Site          `yaml:"site"`
	NavBar        NavBar        `yaml:"navBar"`
	SidebarLayout SidebarLayout `yaml:"sidebarLayout"`
	Profile       Profile       `yaml:"profile"`
	Announcement  Announcement  `yaml:"announcement"`
	Post          Post          `yaml:"post"`
	Footer        Footer        `yaml:"footer"`
	Particle      Particle      `yaml:"particle"`
	MusicPlayer   MusicPlayer   `yaml:"musicPlayer"`
	Pio           Pio           `yaml:"pio"`
	Umami         Umami         `yaml:"umami"`
}

// Consts are the short global values used in feeds and preview images.
type Consts struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
}

type Site struct {
	SiteURL          string     `yaml:"siteURL"`
	Title            string     `yaml:"title"`
	Subtitle         string     `yaml:"subtitle"`
	Lang             string     `yaml:"lang"`
	Translate        Translate  `yaml:"translate"`
	TimeZone         int        `yaml:"timeZone"`
	Font             Font       `yaml:"font"`
	ThemeColor       ThemeColor `yaml:"themeColor"`
	DefaultTheme     string     `yaml:"defaultTheme"`
	Wallpaper        Wallpaper  `yaml:"wallpaper"`
	GenerateOgImages bool       `yaml:"generateOgImages"`
	Favicon          []Favicon  `yaml:"favicon"`
	Bangumi          Bangumi    `yaml:"bangumi"`
}

type Translate struct {
	Enable           bool     `yaml:"enable"`
	Service          string   `yaml:"service"`
	ShowSelectTag    bool     `yaml:"showSelectTag"`
	AutoDiscriminate bool     `yaml:"autoDiscriminate"`
	IgnoreClasses    []string `yaml:"ignoreClasses"`
	IgnoreTags       []string `yaml:"ignoreTags"`
}

type Font struct {
	ZenMaruGothic Toggle `yaml:"zenMaruGothic"`
	Hanalei       Toggle `yaml:"hanalei"`
}

type Toggle struct {
	Enable bool `yaml:"enable"`
}

// ThemeColor is the default accent hue in degrees.
type ThemeColor struct {
	Hue   int  `yaml:"hue"`
	Fixed bool `yaml:"fixed"`
}

type Wallpaper struct {
	Mode       string       `yaml:"mode"`
	Src        WallpaperSrc `yaml:"src"`
	Position   string       `yaml:"position"`
	Carousel   Carousel     `yaml:"carousel"`
	Banner     Banner       `yaml:"banner"`
	Fullscreen Fullscreen   `yaml:"fullscreen"`
}

// WallpaperSrc lists images per device; more than one enables the carousel.
type WallpaperSrc struct {
	Desktop StringList `yaml:"desktop"`
	Mobile  StringList `yaml:"mobile"`
}

type Carousel struct {
	Enable   bool    `yaml:"enable"`
	Interval float64 `yaml:"interval"`
	KenBurns bool    `yaml:"kenBurns"`
}

type Banner struct {
	HomeText HomeText    `yaml:"homeText"`
	Credit   Credit      `yaml:"credit"`
	Navbar   NavbarStyle `yaml:"navbar"`
	Waves    Waves       `yaml:"waves"`
}

type HomeText struct {
	Enable     bool       `yaml:"enable"`
	Title      string     `yaml:"title"`
	Subtitle   StringList `yaml:"subtitle"`
	Typewriter Typewriter `yaml:"typewriter"`
}

// Typewriter timings are in milliseconds.
type Typewriter struct {
	Enable      bool `yaml:"enable"`
	Speed       int  `yaml:"speed"`
	DeleteSpeed int  `yaml:"deleteSpeed"`
	PauseTime   int  `yaml:"pauseTime"`
}

type Credit struct {
	Enable bool   `yaml:"enable"`
	Text   string `yaml:"text"`
	URL    string `yaml:"url"`
}

type NavbarStyle struct {
	TransparentMode string `yaml:"transparentMode"`
}

type Waves struct {
	Enable          bool `yaml:"enable"`
	PerformanceMode bool `yaml:"performanceMode"`
}

type Fullscreen struct {
	ZIndex  int         `yaml:"zIndex"`
	Opacity float64     `yaml:"opacity"`
	Blur    float64     `yaml:"blur"`
	Navbar  NavbarStyle `yaml:"navbar"`
}

type Favicon struct {
	Src   string `yaml:"src"`
	Theme string `yaml:"theme,omitempty"`
	Sizes string `yaml:"sizes,omitempty"`
}

type Bangumi struct {
	UserID string `yaml:"userId"`
}

type NavBar struct {
	Links []NavLink `yaml:"links"`
}

type SidebarLayout struct {
	Components []SidebarComponent `yaml:"components"`
	Responsive SidebarResponsive  `yaml:"responsive"`
}

// SidebarComponent places one widget in a sidebar. Lower Order comes first.
type SidebarComponent struct {
	Type        string               `yaml:"type"`
	Enable      bool                 `yaml:"enable"`
	Side        string               `yaml:"side"`
	Order       int                  `yaml:"order"`
	Position    string               `yaml:"position"`
	Responsive  *ComponentResponsive `yaml:"responsive,omitempty"`
	CustomProps map[string]any       `yaml:"customProps,omitempty"`
}

type ComponentResponsive struct {
	CollapseThreshold int `yaml:"collapseThreshold"`
}

type SidebarResponsive struct {
	Layout DeviceLayout `yaml:"layout"`
}

type DeviceLayout struct {
	Mobile  string `yaml:"mobile"`
	Tablet  string `yaml:"tablet"`
	Desktop string `yaml:"desktop"`
}

type Profile struct {
	Avatar string        `yaml:"avatar"`
	Name   string        `yaml:"name"`
	Bio    string        `yaml:"bio"`
	Links  []ProfileLink `yaml:"links"`
}

type ProfileLink struct {
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
	URL  string `yaml:"url"`
}

type Announcement struct {
	Title    string           `yaml:"title"`
	Content  string           `yaml:"content"`
	Closable bool             `yaml:"closable"`
	Link     AnnouncementLink `yaml:"link"`
}

type AnnouncementLink struct {
	Enable   bool   `yaml:"enable"`
	Text     string `yaml:"text"`
	URL      string `yaml:"url"`
	External bool   `yaml:"external"`
}

type Post struct {
	ShowLastModified   bool           `yaml:"showLastModified"`
	ShowCoverInContent bool           `yaml:"showCoverInContent"`
	ExpressiveCode     ExpressiveCode `yaml:"expressiveCode"`
	License            License        `yaml:"license"`
	Comment            Comment        `yaml:"comment"`
}

type ExpressiveCode struct {
	Theme string `yaml:"theme"`
}

type License struct {
	Enable bool   `yaml:"enable"`
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
}

type Comment struct {
	Enable bool   `yaml:"enable"`
	Twikoo Twikoo `yaml:"twikoo"`
}

type Twikoo struct {
	EnvID string `yaml:"envId"`
	Lang  string `yaml:"lang"`
}

// Footer.CustomHTML is sanitized on load.
type Footer struct {
	Enable     bool   `yaml:"enable"`
	CustomHTML string `yaml:"customHtml"`
}

type Particle struct {
	Enable      bool          `yaml:"enable"`
	ParticleNum int           `yaml:"particleNum"`
	LimitTimes  int           `yaml:"limitTimes"` // -1 is unlimited
	Size        Range         `yaml:"size"`
	Opacity     Range         `yaml:"opacity"`
	Speed       ParticleSpeed `yaml:"speed"`
	ZIndex      int           `yaml:"zIndex"`
}

type ParticleSpeed struct {
	Horizontal Range   `yaml:"horizontal"`
	Vertical   Range   `yaml:"vertical"`
	Rotation   float64 `yaml:"rotation"`
	FadeSpeed  float64 `yaml:"fadeSpeed"`
}

type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type MusicPlayer struct {
	Enable bool       `yaml:"enable"`
	Mode   string     `yaml:"mode"`
	Meting Meting     `yaml:"meting"`
	Local  LocalMusic `yaml:"local"`
}

type Meting struct {
	API    string `yaml:"meting_api"`
	Server string `yaml:"server"`
	Type   string `yaml:"type"`
	ID     string `yaml:"id"`
}

type LocalMusic struct {
	Playlist []Track `yaml:"playlist"`
}

// Track.Duration is in seconds.
type Track struct {
	ID       int    `yaml:"id"`
	Title    string `yaml:"title"`
	Artist   string `yaml:"artist"`
	Cover    string `yaml:"cover"`
	URL      string `yaml:"url"`
	Duration int    `yaml:"duration"`
}

// Pio is the mascot widget.
type Pio struct {
	Enable         bool      `yaml:"enable"`
	Models         []string  `yaml:"models"`
	Position       string    `yaml:"position"`
	Width          int       `yaml:"width"`
	Height         int       `yaml:"height"`
	Mode           string    `yaml:"mode"`
	HiddenOnMobile bool      `yaml:"hiddenOnMobile"`
	Dialog         PioDialog `yaml:"dialog"`
}

type PioDialog struct {
	Welcome StringList `yaml:"welcome"`
	Touch   StringList `yaml:"touch"`
	Home    string     `yaml:"home"`
	Skin    StringList `yaml:"skin"`
	Close   string     `yaml:"close"`
	Link    string     `yaml:"link"`
}

// Umami.APIKey and Umami.Scripts fall back to UMAMI_API_KEY and
// UMAMI_TRACKING_CODE.
type Umami struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
	Scripts string `yaml:"scripts"`
}

// StringList accepts either a single string or a sequence of strings.
type StringList []string

func (l *StringList) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var s string
		if err := n.Decode(&s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	case yaml.SequenceNode:
		var ss []string
		if err := n.Decode(&ss); err != nil {
			return err
		}
		*l = ss
		return nil
	}
	return fmt.Errorf("line %d: expected a string or a list of strings", n.Line)
}
