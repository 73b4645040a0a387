package siteconfig

// Default returns the site's published configuration. Load overlays a YAML
// document on top of it.
func Default() *Config {
	return &Config{
		Consts: Consts{
			Title:       "Kulius Blog",
			Description: "Tech insights, development notes, and industry news - automatically curated and published.",
			URL:         "https://kulius.github.io",
		},
		Site: Site{
			SiteURL:  "https://www.euptop.com/",
			Title:    "蘇勃任 | Odoo 技術筆記",
			Subtitle: "Odoo ERP 客製化開發、AI 整合應用、企業數位轉型",
			Lang:     "zh",
			Translate: Translate{
				Service:          "client.edge",
				AutoDiscriminate: true,
				IgnoreClasses:    []string{"ignore", "banner-title", "banner-subtitle"},
				IgnoreTags:       []string{"script", "style", "code", "pre"},
			},
			TimeZone:     8,
			ThemeColor:   ThemeColor{Hue: 255},
			DefaultTheme: ThemeDark,
			Wallpaper: Wallpaper{
				Mode: WallpaperBanner,
				Src: WallpaperSrc{
					Desktop: StringList{
						"/assets/desktop-banner/desktopBanner_1.webp",
						"/assets/desktop-banner/desktopBanner_2.webp",
						"/assets/desktop-banner/desktopBanner_3.webp",
					},
					Mobile: StringList{
						"/assets/mobile-banner/mobileBanner_1.webp",
						"/assets/mobile-banner/mobileBanner_2.webp",
					},
				},
				Position: "center",
				Carousel: Carousel{Interval: 3.6, KenBurns: true},
				Banner: Banner{
					HomeText: HomeText{
						Title:      "蘇勃任 | Odoo 技術筆記",
						Subtitle:   StringList{"Odoo 技術筆記", "AI 整合應用", "企業數位轉型"},
						Typewriter: Typewriter{Speed: 111, DeleteSpeed: 51, PauseTime: 3000},
					},
					Credit: Credit{Text: "Describe"},
					Navbar: NavbarStyle{TransparentMode: "semifull"},
				},
				Fullscreen: Fullscreen{
					ZIndex:  -1,
					Opacity: 0.9,
					Blur:    1,
					Navbar:  NavbarStyle{TransparentMode: "semi"},
				},
			},
			Favicon: []Favicon{},
			Bangumi: Bangumi{UserID: "your-bangumi-id"},
		},
		NavBar: NavBar{Links: []NavLink{
			link(PresetHome),
			link(PresetArchive),
			{
				Name: "連結",
				URL:  "/links/",
				Icon: "material-symbols:link",
				Children: []NavLink{
					{Name: "GitHub", URL: "https://github.com/kulius", External: true, Icon: "fa6-brands:github"},
					{Name: "Bilibili", URL: "https://space.bilibili.com/Example", External: true, Icon: "fa6-brands:bilibili"},
				},
			},
			{
				Name: "個人",
				URL:  "/content/",
				Icon: "material-symbols:person",
				Children: []NavLink{
					link(PresetProjects),
					link(PresetSkills),
					link(PresetTimeline),
					link(PresetDiary),
					link(PresetAlbums),
					link(PresetAnime),
				},
			},
			{
				Name:     "關於",
				URL:      "/content/",
				Icon:     "material-symbols:info",
				Children: []NavLink{link(PresetAbout), link(PresetFriends)},
			},
		}},
		SidebarLayout: SidebarLayout{
			Components: []SidebarComponent{
				{Type: "profile", Side: "left", Order: 1, Position: "top"},
				{Type: "announcement", Side: "left", Order: 2, Position: "top"},
				{Type: "categories", Side: "left", Order: 3, Position: "sticky", Responsive: &ComponentResponsive{CollapseThreshold: 5}},
				{Type: "tags", Side: "left", Order: 4, Position: "sticky", Responsive: &ComponentResponsive{CollapseThreshold: 20}},
				{Type: "toc", Side: "right", Order: 1, Position: "sticky", CustomProps: map[string]any{"depth": 3}},
			},
			Responsive: SidebarResponsive{Layout: DeviceLayout{Mobile: "sidebar", Tablet: "sidebar", Desktop: "sidebar"}},
		},
		Profile: Profile{
			Avatar: "assets/images/avatar.png",
			Name:   "蘇勃任",
			Bio:    "Odoo 技術顧問 | AI 整合專家",
			Links:  []ProfileLink{{Name: "GitHub", Icon: "fa6-brands:github", URL: "https://github.com/kulius"}},
		},
		Announcement: Announcement{
			Title:    "公告",
			Content:  "歡迎來到我的技術部落格！分享 Odoo 開發與 AI 整合實戰經驗",
			Closable: true,
			Link:     AnnouncementLink{Text: "了解更多", URL: "/about/"},
		},
		Post: Post{
			ShowLastModified: true,
			ExpressiveCode:   ExpressiveCode{Theme: "github-dark"},
			License:          License{Name: "CC BY-NC-SA 4.0", URL: "https://creativecommons.org/licenses/by-nc-sa/4.0/"},
			Comment:          Comment{Twikoo: Twikoo{EnvID: "https://twikoo.vercel.app", Lang: "zh"}},
		},
		Particle: Particle{
			ParticleNum: 12,
			LimitTimes:  -1,
			Size:        Range{Min: 0.3, Max: 0.9},
			Opacity:     Range{Min: 0.3, Max: 0.9},
			Speed: ParticleSpeed{
				Horizontal: Range{Min: -0.9, Max: 0.9},
				Vertical:   Range{Min: 0.15, Max: 0.3},
				Rotation:   0.12,
				FadeSpeed:  0.12,
			},
			ZIndex: 100,
		},
		MusicPlayer: MusicPlayer{
			Mode: MusicMeting,
			Meting: Meting{
				API:    "https://api.i-meto.com/meting/api",
				Server: "netease",
				Type:   "playlist",
				ID:     "2161912966",
			},
			Local: LocalMusic{Playlist: []Track{{
				ID:       1,
				Title:    "深海之息",
				Artist:   "Youzee Music",
				Cover:    "https://p1.music.126.net/PhKOqFtljgHDDpKYM2ADUA==/109951169858309716.jpg",
				URL:      "assets/music/url/深海之息.m4a",
				Duration: 146,
			}}},
		},
		Pio: Pio{
			Models:         []string{"/pio/models/pio/model.json"},
			Position:       "left",
			Width:          280,
			Height:         250,
			Mode:           "draggable",
			HiddenOnMobile: true,
			Dialog: PioDialog{
				Welcome: StringList{"Welcome!"},
				Touch:   StringList{"What are you doing?", "Stop touching me!", "Don't bully me like that!", "(｡í _ ì｡)"},
				Home:    "Click here to go back to homepage!",
				Skin:    StringList{"Want to see my new outfit?", "The new outfit looks great~"},
				Close:   "See you next time~",
				Link:    "https://nav.kungal.org",
			},
		},
		Umami: Umami{BaseURL: "https://api.umami.is"},
	}
}
