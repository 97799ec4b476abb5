package widgets

import (
	"fmt"
	"math/rand/v2"
)

// Quotes are the advisor's sayings shown on the quotes slide.
var Quotes = []string{
	"人类的进步（内卷）真是就这么发生中。",
	"我希望你们都对世界有一种好奇。",
	"人类的社会性是从这些领域习得的。",
	"去找一些好奇的真的需要去问、去了解 去谈论和得到领导或者专家或者学长学姐指导的事情 而非关起门自己一个人就能做的事情。",
	"可以想象你们用这种作品去PK其他人的时候有多么具有杀伤力)",
	"一起吃瓜一下，不要让我落后于时代。",
	"最近的学术深瓜🍉，距离被删不远了，看得懂的可吃",
	"有人吗，深夜八卦一下",
}

// RandomQuote picks a quote using r.
func RandomQuote(r *rand.Rand) string {
	return Quotes[r.IntN(len(Quotes))]
}

// GalleryPhotos is the number of photos in a training gallery.
const GalleryPhotos = 6

// Gallery is a training photo gallery.
type Gallery struct {
	Title  string
	Photos []Photo
}

// Photo is one gallery image.
type Photo struct {
	Path string
	Alt  string
}

// GalleryFor builds the gallery for a training card.
func GalleryFor(trainingID string) Gallery {
	g := Gallery{Title: "政务新闻摄影培训作品"}
	if trainingID == "1" {
		g.Title = "学生骨干网络思政培训照片"
	}
	for i := 1; i <= GalleryPhotos; i++ {
		g.Photos = append(g.Photos, Photo{
			Path: fmt.Sprintf("assets/images/gallery%d.jpg", i),
			Alt:  fmt.Sprintf("培训照片 %d", i),
		})
	}
	return g
}

// Seasons in display order.
var Seasons = []string{"spring", "summer", "autumn", "winter"}

var seasonTitles = map[string]string{
	"spring": "🌸 春季记忆",
	"summer": "🎓 夏季记忆",
	"autumn": "🍂 秋季记忆",
	"winter": "❄️ 冬季记忆",
}

// SeasonTitle returns the heading for a season card.
func SeasonTitle(season string) string {
	if t, ok := seasonTitles[season]; ok {
		return t
	}
	return "季节记忆"
}

// Avatars returns the placeholder labels of the new-member grid.
func Avatars() []string {
	out := make([]string, 8)
	for i := range out {
		out[i] = fmt.Sprintf("新%d", i+1)
	}
	return out
}
