package siteconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LinkPreset names a built-in navigation entry.
type LinkPreset string

const (
	PresetHome     LinkPreset = "Home"
	PresetArchive  LinkPreset = "Archive"
	PresetAbout    LinkPreset = "About"
	PresetFriends  LinkPreset = "Friends"
	PresetAnime    LinkPreset = "Anime"
	PresetDiary    LinkPreset = "Diary"
	PresetAlbums   LinkPreset = "Albums"
	PresetProjects LinkPreset = "Projects"
	PresetSkills   LinkPreset = "Skills"
	PresetTimeline LinkPreset = "Timeline"
)

var presets = map[LinkPreset]NavLink{
	PresetHome:     {Name: "首頁", URL: "/", Icon: "material-symbols:home"},
	PresetArchive:  {Name: "歸檔", URL: "/archive/", Icon: "material-symbols:archive"},
	PresetAbout:    {Name: "關於", URL: "/about/", Icon: "material-symbols:info"},
	PresetFriends:  {Name: "友鏈", URL: "/friends/", Icon: "material-symbols:group"},
	PresetAnime:    {Name: "追番", URL: "/anime/", Icon: "material-symbols:movie"},
	PresetDiary:    {Name: "日記", URL: "/diary/", Icon: "material-symbols:book"},
	PresetAlbums:   {Name: "相簿", URL: "/albums/", Icon: "material-symbols:photo-library"},
	PresetProjects: {Name: "專案", URL: "/projects/", Icon: "material-symbols:work"},
	PresetSkills:   {Name: "技能", URL: "/skills/", Icon: "material-symbols:psychology"},
	PresetTimeline: {Name: "時間線", URL: "/timeline/", Icon: "material-symbols:timeline"},
}

// Link resolves the preset to its navigation entry.
func (p LinkPreset) Link() (NavLink, bool) {
	l, ok := presets[p]
	if ok {
		l.Preset = p
	}
	return l, ok
}

// NavLink is one navigation entry, possibly with a submenu. In YAML it is
// either a preset name or a mapping.
type NavLink struct {
	Name     string     `yaml:"name"`
	URL      string     `yaml:"url"`
	Icon     string     `yaml:"icon,omitempty"`
	External bool       `yaml:"external,omitempty"`
	Children []NavLink  `yaml:"children,omitempty"`
	Preset   LinkPreset `yaml:"-"`
}

func (l *NavLink) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		link, ok := LinkPreset(n.Value).Link()
		if !ok {
			return fmt.Errorf("line %d: unknown link preset %q", n.Line, n.Value)
		}
		*l = link
		return nil
	}
	type plain NavLink
	var p plain
	if err := n.Decode(&p); err != nil {
		return err
	}
	*l = NavLink(p)
	return nil
}

func link(p LinkPreset) NavLink {
	l, _ := p.Link()
	return l
}
