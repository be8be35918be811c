package services

import "github.com/jonreiter/govader"

const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// analyzer chỉ đọc lexicon sau khi khởi tạo nên dùng chung được.
var analyzer = govader.NewSentimentIntensityAnalyzer()

// Polarity trả về điểm compound của VADER, nằm trong [-1, 1]; văn bản rỗng là 0.
func Polarity(text string) float64 {
	if text == "" {
		return 0
	}
	return analyzer.PolarityScores(text).Compound
}

func SentimentCategory(polarity float64) string {
	switch {
	case polarity > 0.1:
		return SentimentPositive
	case polarity < -0.1:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
