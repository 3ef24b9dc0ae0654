package recommend

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

const (
	systemPromptEN = "You are a professional marketing expert for Winner12 football prediction product. Specializing in creating precise marketing strategies for football enthusiasts and sports betting users, generating high-conversion marketing recommendations based on football culture and match rhythms."
	systemPromptZH = "你是Winner12足球预测产品的专业营销推广专家。专门为足球爱好者和体育投注用户制定精准的营销策略，基于足球文化和赛事节奏生成高转化率的营销推荐。"
)

// isChinese reports whether the requested language resolves to Chinese.
// Anything unparseable or non-Chinese gets the English prompt.
func isChinese(lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	return base.String() == "zh"
}

func systemPrompt(zh bool) string {
	if zh {
		return systemPromptZH
	}
	return systemPromptEN
}

func buildPrompt(req Request, zh bool) string {
	culture := cultureFor(req.RegionID, zh)
	if zh {
		return buildPromptZH(req, culture)
	}
	return buildPromptEN(req, culture)
}

func buildPromptEN(req Request, c cultureEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are a professional marketing specialist for Winner12, an AI-powered football match prediction product. Winner12 uses advanced AI technology to help users improve their football betting and prediction accuracy.

## Product Background
- Product Name: Winner12 AI Football Prediction
- Core Function: AI-driven football match result prediction
- Target Users: Football enthusiasts, sports bettors, data analysts
- Competitive Advantage: High-precision prediction algorithms, real-time data analysis, user-friendly interface

## Target Region Analysis
Marketing Region: %s
Football Culture: %s
Popular Teams: %s

## Marketing Calendar Data
Time Period: %s to %s

Existing Events:
`, c.name, c.culture, c.teams, req.StartDate, req.EndDate)

	for _, ev := range req.Events {
		fmt.Fprintf(&b, "- %s on %s (%s)\n", ev.Title, ev.StartDate, orDefault(ev.Description.String, "No description"))
	}
	b.WriteString("\nHolidays during this period:\n")
	for _, h := range req.Holidays {
		fmt.Fprintf(&b, "- %s on %s (%s)\n", h.Name, h.Date, orDefault(h.Description.String, "No description"))
	}

	fmt.Fprintf(&b, `
## Marketing Strategy Requirements
Based on Winner12's football prediction product features, generate 3-5 high-conversion football-related marketing holiday recommendations for %s:

### Priority Recommendation Types:
1. **Major Football Events** - World Cup, European Championship, Copa America, Asian Cup, etc.
2. **League Key Moments** - Season start, transfer windows, playoffs, finals
3. **Local Football Culture Days** - Local team anniversaries, important match commemorations
4. **Football-related International Days** - World Football Day, Anti-Racism Day, etc.
5. **Sports Betting Hot Periods** - Before/after important matches, odds fluctuation periods

### Marketing Angle Suggestions:
- Emphasize AI prediction accuracy and technology
- Combine local football culture and popular teams
- Highlight product value during important matches
- Use football emotional marketing and community belonging
- Showcase data analysis professionalism and reliability

### Avoid Recommending:
- Non-football related ordinary holidays
- Potentially controversial sensitive topics
- Time conflicts with existing events
- Commemorative days lacking commercial conversion value

## Output Requirements
For each recommendation, provide:
- title: Marketing activity name that attracts football enthusiasts
- description: Detailed Winner12 product promotion strategy, including target users, marketing selling points, expected results
- suggestedDate: Optimal marketing timing in YYYY-MM-DD format
- confidenceScore: Recommendation confidence between 0.7-1.0 (based on football relevance and commercial value)
- reasoning: Detailed explanation of why this timing suits Winner12 promotion, including football background, user needs, competitive advantages
- eventTypeId: 2 for marketing campaigns

Please respond strictly in the following JSON format:
{
  "recommendations": [
    {
      "title": "Winner12 Football Prediction Marketing Campaign Title",
      "description": "Detailed promotion strategy targeting football enthusiasts",
      "suggestedDate": "YYYY-MM-DD",
      "confidenceScore": 0.85,
      "reasoning": "Recommendation reason based on football culture and Winner12 product features",
      "eventTypeId": 2
    }
  ]
}
`, c.name)

	return b.String()
}

func buildPromptZH(req Request, c cultureEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, `你是Winner12足球预测产品的专业营销推广人员。Winner12是一款使用AI技术进行足球比赛预测的创新产品，帮助用户提高足球投注和预测的准确性。

## 产品背景
- 产品名称：Winner12 AI足球预测
- 核心功能：AI驱动的足球比赛结果预测
- 目标用户：足球爱好者、体育投注者、数据分析师
- 竞争优势：高精度预测算法、实时数据分析、用户友好界面

## 目标区域分析
推广区域：%s
足球文化特色：%s
热门球队：%s

## 营销日历数据
时间段: %s 到 %s

现有事件:
`, c.name, c.culture, c.teams, req.StartDate, req.EndDate)

	for _, ev := range req.Events {
		fmt.Fprintf(&b, "- %s 在 %s (%s)\n", ev.Title, ev.StartDate, orDefault(ev.Description.String, "无描述"))
	}
	b.WriteString("\n此期间的节假日:\n")
	for _, h := range req.Holidays {
		fmt.Fprintf(&b, "- %s 在 %s (%s)\n", h.Name, h.Date, orDefault(h.Description.String, "无描述"))
	}

	fmt.Fprintf(&b, `
## 营销推荐策略要求
请基于Winner12足球预测产品特性，为%s地区生成3-5个高转化率的足球相关营销节日推荐：

### 优先推荐类型：
1. **重大足球赛事期间** - 世界杯、欧洲杯、美洲杯、亚洲杯等国际大赛
2. **联赛关键节点** - 赛季开始、转会窗口、季后赛、总决赛
3. **本地足球文化节日** - 当地球队成立纪念日、重要比赛纪念日
4. **足球相关国际日** - 世界足球日、反种族主义日等
5. **体育博彩热点时期** - 重要比赛前后、赔率波动期

### 营销角度建议：
- 强调AI预测的准确性和科技感
- 结合当地足球文化和热门球队
- 突出产品在重要比赛中的价值
- 利用足球情感营销和社区归属感
- 展示数据分析的专业性和可靠性

### 避免推荐：
- 与足球无关的普通节日
- 可能引起争议的敏感话题
- 与现有事件冲突的时间点
- 缺乏商业转化价值的纪念日

## 输出要求
对于每个推荐，请提供：
- title: 吸引足球爱好者的营销活动名称
- description: 详细的Winner12产品推广策略，包括目标用户、营销卖点、预期效果
- suggestedDate: YYYY-MM-DD格式的最佳营销时机
- confidenceScore: 0.7-1.0之间的推荐信心度（基于足球相关性和商业价值）
- reasoning: 详细说明为什么这个时机适合推广Winner12，包括足球背景、用户需求、竞争优势
- eventTypeId: 2表示营销活动

请严格按照以下JSON格式回复：
{
  "recommendations": [
    {
      "title": "Winner12足球预测营销活动标题",
      "description": "针对足球爱好者的详细推广策略",
      "suggestedDate": "YYYY-MM-DD",
      "confidenceScore": 0.85,
      "reasoning": "基于足球文化和Winner12产品特性的推荐理由",
      "eventTypeId": 2
    }
  ]
}
`, c.name)

	return b.String()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
