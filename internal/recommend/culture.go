package recommend

// cultureEntry describes a region's football-marketing context fed into
// the prompt.
type cultureEntry struct {
	name    string
	culture string
	teams   string
}

var culturesEN = map[int64]cultureEntry{
	1:  {"China", "Chinese Super League, National Team, Asian Cup, World Cup enthusiasm", "Guangzhou Evergrande, Shanghai SIPG, Beijing Guoan"},
	2:  {"United States", "MLS, World Cup, European Big 5 Leagues attention", "LAFC, Seattle Sounders, Atlanta United"},
	3:  {"Canada", "MLS, World Cup, European Leagues", "Toronto FC, Vancouver Whitecaps, CF Montreal"},
	4:  {"Europe", "Big 5 Leagues, Champions League, European Championship, World Cup", "Real Madrid, Barcelona, Manchester United, Bayern Munich, PSG"},
	5:  {"Japan", "J-League, Asian Cup, World Cup, European League attention", "Urawa Red Diamonds, Kashima Antlers, Kawasaki Frontale"},
	6:  {"South Korea", "K-League, Asian Cup, World Cup, European Leagues", "Jeonbuk Hyundai, Ulsan Hyundai, FC Seoul"},
	7:  {"Vietnam", "V-League, Southeast Asian Football, World Cup, European Leagues", "Hanoi FC, Ho Chi Minh City FC, Binh Duong FC"},
	8:  {"Indonesia", "Indonesian Super League, Southeast Asian Football, World Cup", "Persija Jakarta, Bali United, Arema FC"},
	9:  {"Thailand", "Thai League, Southeast Asian Football, World Cup", "Buriram United, Bangkok United, Chonburi FC"},
	10: {"Brazil", "Brasileirão, Copa Libertadores, World Cup football kingdom", "Flamengo, Corinthians, Palmeiras"},
	11: {"Argentina", "Argentine Primera División, South American Football, World Cup, Messi culture", "Boca Juniors, River Plate, Racing Club"},
	12: {"Mexico", "Liga MX, CONCACAF Football, World Cup", "Club América, Guadalajara, Cruz Azul"},
}

var culturesZH = map[int64]cultureEntry{
	1:  {"中国", "中超联赛、国足、亚洲杯、世界杯热情", "广州恒大、上海上港、北京国安"},
	2:  {"美国", "MLS、世界杯、欧洲五大联赛关注", "LAFC、西雅图海湾人、亚特兰大联"},
	3:  {"加拿大", "MLS、世界杯、欧洲联赛", "多伦多FC、温哥华白帽、蒙特利尔冲击"},
	4:  {"欧洲", "五大联赛、欧冠、欧洲杯、世界杯", "皇马、巴萨、曼联、拜仁、巴黎"},
	5:  {"日本", "J联赛、亚洲杯、世界杯、欧洲联赛关注", "浦和红钻、鹿岛鹿角、川崎前锋"},
	6:  {"韩国", "K联赛、亚洲杯、世界杯、欧洲联赛", "全北现代、蔚山现代、首尔FC"},
	7:  {"越南", "V联赛、东南亚足球、世界杯、欧洲联赛", "河内FC、胡志明市FC、平阳FC"},
	8:  {"印度尼西亚", "印尼超级联赛、东南亚足球、世界杯", "佩尔西亚雅加达、巴厘联、阿雷马FC"},
	9:  {"泰国", "泰超联赛、东南亚足球、世界杯", "武里南联、曼谷联合、春武里FC"},
	10: {"巴西", "巴甲联赛、南美解放者杯、世界杯足球王国", "弗拉门戈、科林蒂安、帕尔梅拉斯"},
	11: {"阿根廷", "阿甲联赛、南美足球、世界杯、梅西文化", "博卡青年、河床、竞技俱乐部"},
	12: {"墨西哥", "墨超联赛、中北美足球、世界杯", "美洲队、瓜达拉哈拉、蓝十字"},
}

// cultureFor returns the region's entry, or a generic one for regions
// outside the seeded set.
func cultureFor(regionID int64, zh bool) cultureEntry {
	if zh {
		if c, ok := culturesZH[regionID]; ok {
			return c
		}
		return cultureEntry{"目标区域", "足球文化", "本地球队"}
	}
	if c, ok := culturesEN[regionID]; ok {
		return c
	}
	return cultureEntry{"Unknown Region", "Football culture", "Local teams"}
}
