package registry

import (
	"time"

	"sportspulse/internal/domain"
)

func DefaultMatches() []domain.Match {
	return []domain.Match{
		{
			ID:          "liverpool-city",
			Home:        "ليفربول",
			Away:        "مانشستر سيتي",
			HomeScore:   1,
			AwayScore:   1,
			Status:      domain.MatchLive,
			Minute:      67,
			Competition: "الدوري الإنجليزي",
		},
		{
			ID:          "saudi-egypt",
			Home:        "المنتخب السعودي",
			Away:        "المنتخب المصري",
			HomeScore:   0,
			AwayScore:   0,
			Status:      domain.MatchScheduled,
			Minute:      0,
			Competition: "كأس العرب",
		},
	}
}

// DefaultArticles returns the launch articles dated relative to now.
func DefaultArticles(now time.Time) []domain.Article {
	return []domain.Article{
		{
			ID:       1,
			Title:    "فوز تاريخي للمنتخب في مباراة الافتتاح",
			Content:  "حقق المنتخب الوطني فوزاً تاريخياً في مباراة الافتتاح ضمن البطولة القارية...",
			Image:    "https://kimi-web-img.moonshot.cn/img/media.istockphoto.com/37bfbfa9c19211d48231c99b5c7af7efaec2cf8d.jpg",
			Category: "كرة قدم",
			Author:   "محمد أحمد",
			Date:     now.Add(-3 * time.Hour),
			Views:    1250,
			Featured: true,
		},
		{
			ID:       2,
			Title:    "مفاجأة كبرى في دوري الأبطال",
			Content:  "شهدت مباريات دوري الأبطال مفاجأة من العيار الثقيل...",
			Image:    "https://kimi-web-img.moonshot.cn/img/media.istockphoto.com/89f28affcc7354293c7000712789d9b60bf67686.jpg",
			Category: "دوري أبطال أوروبا",
			Author:   "سارة محمد",
			Date:     now.Add(-5 * time.Hour),
			Views:    890,
			Featured: false,
		},
		{
			ID:       3,
			Title:    "نجم السلة الجديد يخطف الأضواء",
			Content:  "اللاعب الشاب يوسف أحمد يخطف الأضواء في الدوري الأمريكي...",
			Image:    "https://kimi-web-img.moonshot.cn/img/img.freepik.com/214bbcfbf546629e029efe87fcae1945fba45b96.jpg",
			Category: "كرة سلة",
			Author:   "أحمد يوسف",
			Date:     now.Add(-7 * time.Hour),
			Views:    2100,
			Featured: true,
		},
	}
}
