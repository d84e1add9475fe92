package seeder

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/brianvoe/gofakeit/v6"
)

// Locale produces localized free text.
type Locale interface {
	Name() string
	Sentence(words int) string
	CatchPhrase() string
}

func NewLocale(name string, r *rand.Rand) (Locale, error) {
	switch name {
	case "ko_KR", "":
		return &koreanLocale{rand: r}, nil
	case "en_US":
		return &englishLocale{faker: gofakeit.New(r.Int63())}, nil
	default:
		return nil, fmt.Errorf("unsupported locale: %s", name)
	}
}

var (
	koFamilyNames = []string{
		"김", "이", "박", "최", "정", "강", "조", "윤", "장", "임",
		"한", "오", "서", "신", "권", "황", "안", "송", "류", "홍",
	}
	koGivenNames = []string{
		"민준", "서연", "도윤", "서윤", "시우", "지우", "하준", "하윤", "주원", "지민",
		"지호", "수아", "준서", "지유", "예준", "채원", "현우", "수빈", "건우", "예은",
		"우진", "다은", "선우", "은서", "민재", "영숙", "정호", "미경", "상철", "경희",
	}
	koWords = []string{
		"서비스", "고객", "만족", "개선", "품질", "배송", "가격", "제품", "속도", "직원",
		"친절", "응답", "문제", "해결", "요청", "사용", "편리", "화면", "결제", "기능",
		"안내", "확인", "처리", "시간", "매우", "조금", "다시", "정말", "빠른", "느린",
	}
	koCatchAdjectives = []string{
		"혁신적인", "통합된", "지능형", "차세대", "사용자 중심의", "확장 가능한",
		"글로벌", "실시간", "분산된", "맞춤형", "효율적인", "지속 가능한",
	}
	koCatchNouns = []string{
		"데이터 분석", "알고리즘", "인공지능", "플랫폼", "네트워크", "프로세스",
		"시스템 설계", "경영 전략", "인터페이스", "소프트웨어 공학", "마케팅", "디지털 미디어",
	}
)

type koreanLocale struct {
	rand *rand.Rand
}

func (l *koreanLocale) pick(options []string) string {
	return options[l.rand.Intn(len(options))]
}

func (l *koreanLocale) Name() string {
	return l.pick(koFamilyNames) + l.pick(koGivenNames)
}

func (l *koreanLocale) Sentence(words int) string {
	if words <= 0 {
		words = 1
	}
	parts := make([]string, words)
	for i := range parts {
		parts[i] = l.pick(koWords)
	}
	return strings.Join(parts, " ") + "."
}

func (l *koreanLocale) CatchPhrase() string {
	return l.pick(koCatchAdjectives) + " " + l.pick(koCatchNouns)
}

type englishLocale struct {
	faker *gofakeit.Faker
}

func (l *englishLocale) Name() string {
	return l.faker.Name()
}

func (l *englishLocale) Sentence(words int) string {
	return l.faker.Sentence(words)
}

func (l *englishLocale) CatchPhrase() string {
	return capitalize(l.faker.BuzzWord()) + " " + l.faker.Noun()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
