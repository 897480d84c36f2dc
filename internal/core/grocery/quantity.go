package grocery

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var toRangePattern = regexp.MustCompile(`(?i)\s+to\s+`)

// ParseQuantity 將數量字串解析為數值
// 支援整數、小數、分數（"1/2"）與範圍（"2-3"、"1 to 2"，取中點）
// 任何解析失敗一律回傳 1.0，確保食材不會因數量格式而被丟棄
func ParseQuantity(quantity string) float64 {
	quantity = strings.TrimSpace(quantity)

	// 連字號範圍（"2-3"），但 "X to Y" 格式優先交給下面處理
	if strings.Contains(quantity, "-") && !strings.Contains(strings.ToLower(quantity), "to") {
		parts := strings.Split(quantity, "-")
		if len(parts) == 2 {
			low, errLow := parseRational(parts[0])
			high, errHigh := parseRational(parts[1])
			if errLow != nil || errHigh != nil {
				return 1.0
			}
			return (low + high) / 2
		}
	}

	// "X to Y" 範圍
	if strings.Contains(strings.ToLower(quantity), "to") {
		parts := toRangePattern.Split(quantity, -1)
		if len(parts) == 2 {
			low, errLow := parseRational(parts[0])
			high, errHigh := parseRational(parts[1])
			if errLow != nil || errHigh != nil {
				return 1.0
			}
			return (low + high) / 2
		}
	}

	// 分數與小數
	value, err := parseRational(quantity)
	if err != nil {
		return 1.0
	}
	return value
}

// parseRational 解析單一運算元：十進位數字或 "a/b" 分數
func parseRational(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty operand")
	}

	if idx := strings.Index(s, "/"); idx >= 0 {
		numStr := strings.TrimSpace(s[:idx])
		denStr := strings.TrimSpace(s[idx+1:])
		num, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return 0, err
		}
		den, err := strconv.ParseFloat(denStr, 64)
		if err != nil {
			return 0, err
		}
		if den == 0 {
			return 0, fmt.Errorf("division by zero: %q", s)
		}
		return num / den, nil
	}

	return strconv.ParseFloat(s, 64)
}

// FormatQuantity 將數值數量渲染為易讀字串
// 整數直接輸出；其餘嘗試以分母 ≤ 16 的分數近似（"1/2"、"2 1/2"），
// 誤差超過 0.01 時退回一位小數表示
func FormatQuantity(quantity float64) string {
	if quantity == math.Trunc(quantity) {
		return strconv.Itoa(int(quantity))
	}

	num, den := approximateFraction(quantity, 16)
	if math.Abs(float64(num)/float64(den)-quantity) < 0.01 {
		if num > den {
			whole := num / den
			remainder := num % den
			if remainder == 0 {
				return strconv.Itoa(whole)
			}
			return fmt.Sprintf("%d %d/%d", whole, remainder, den)
		}
		return fmt.Sprintf("%d/%d", num, den)
	}

	return fmt.Sprintf("%.1f", quantity)
}

// approximateFraction 在分母不超過 maxDen 的分數中找出最接近 value 的一個
// 回傳約分後的分子與分母
func approximateFraction(value float64, maxDen int) (int, int) {
	bestNum, bestDen := int(math.Round(value)), 1
	bestErr := math.Abs(value - float64(bestNum))

	for den := 2; den <= maxDen; den++ {
		num := int(math.Round(value * float64(den)))
		err := math.Abs(value - float64(num)/float64(den))
		if err < bestErr {
			bestNum, bestDen = num, den
			bestErr = err
		}
	}

	g := gcd(bestNum, bestDen)
	if g > 1 {
		bestNum /= g
		bestDen /= g
	}
	return bestNum, bestDen
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// PluralizeUnit 依數量決定單位的顯示形式
// 空單位維持空字串；數量 ≤ 1 不變；數量 > 1 且字尾非 "s" 時加上 "s"
func PluralizeUnit(unit string, quantity float64) string {
	if unit == "" {
		return ""
	}
	if quantity <= 1 {
		return unit
	}
	if strings.HasSuffix(unit, "s") {
		return unit
	}
	return unit + "s"
}
