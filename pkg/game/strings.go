package game

import (
	"fmt"
	"log"

	"github.com/leonelquinteros/gotext"

	"github.com/decker502/pratica/pkg/embedded"
)

// StringsPath 嵌入的界面文本目录
const StringsPath = "data/strings/pt_BR.po"

// 文本键
const (
	StrMenuTitle            = "MENU_TITLE"
	StrMenuSubtitle         = "MENU_SUBTITLE"
	StrMenuStart            = "MENU_START"
	StrReducedMotion        = "SETTINGS_REDUCED_MOTION"
	StrOn                   = "ON"
	StrOff                  = "OFF"
	StrRoundTitle           = "ROUND_TITLE"
	StrButtonCheck          = "BUTTON_CHECK"
	StrButtonAdd            = "BUTTON_ADD"
	StrButtonAddActive      = "BUTTON_ADD_ACTIVE"
	StrButtonAddCopied      = "BUTTON_ADD_COPIED"
	StrButtonNewReference   = "BUTTON_NEW_REFERENCE"
	StrNewReferenceLabel    = "NEW_REFERENCE_LABEL"
	StrFeedbackSuccess      = "FEEDBACK_SUCCESS"
	StrFeedbackFailure      = "FEEDBACK_FAILURE"
	StrButtonContinue       = "BUTTON_CONTINUE"
	StrButtonRetry          = "BUTTON_RETRY"
	StrButtonContinueAnyway = "BUTTON_CONTINUE_ANYWAY"
	StrResultsTitle         = "RESULTS_TITLE"
	StrResultsPercent       = "RESULTS_PERCENT"
	StrResultsScore         = "RESULTS_SCORE"
	StrButtonRestart        = "BUTTON_RESTART"
	StrButtonClose          = "BUTTON_CLOSE"
	StrButtonReview         = "BUTTON_REVIEW"
	StrReviewTitle          = "REVIEW_TITLE"
	StrReviewNoChoice       = "REVIEW_NO_CHOICE"
	StrImageLoading         = "IMAGE_LOADING"
	StrReviewRound          = "REVIEW_ROUND"
)

// builtinStrings 目录缺失时使用的文本
var builtinStrings = map[string]string{
	StrMenuTitle:            "Prova Prática",
	StrMenuSubtitle:         "Identifique as estruturas do microscópio e das plantas.",
	StrMenuStart:            "Começar",
	StrReducedMotion:        "Reduzir movimento: %s",
	StrOn:                   "ligado",
	StrOff:                  "desligado",
	StrRoundTitle:           "Questão %d de %d",
	StrButtonCheck:          "Avançar",
	StrButtonAdd:            "Adicionar",
	StrButtonAddActive:      "Clique na imagem para adicionar",
	StrButtonAddCopied:      "Copiado!",
	StrButtonNewReference:   "Nova opção",
	StrNewReferenceLabel:    "Opção %d",
	StrFeedbackSuccess:      "Parabéns! Você acertou tudo.",
	StrFeedbackFailure:      "Não está correto!",
	StrButtonContinue:       "Continuar",
	StrButtonRetry:          "Tentar novamente.",
	StrButtonContinueAnyway: "Ok, continuar mesmo assim.",
	StrResultsTitle:         "Resultado",
	StrResultsPercent:       "%d%% de acertos",
	StrResultsScore:         "Acertos: %d/%d",
	StrButtonRestart:        "Reiniciar",
	StrButtonClose:          "Fechar",
	StrButtonReview:         "Revisão",
	StrReviewTitle:          "Revisão dos cards",
	StrReviewNoChoice:       "sem escolha",
	StrImageLoading:         "Carregando imagem...",
	StrReviewRound:          "Questão %d",
}

// Strings 界面文本
// 从 gettext 目录加载，缺失的键回退到内置文本
type Strings struct {
	po *gotext.Po
}

// NewStrings 从嵌入的 .po 文件加载文本
// 加载失败时返回只有内置文本的实例和错误
func NewStrings(path string) (*Strings, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return &Strings{}, fmt.Errorf("failed to load strings %s: %w", path, err)
	}
	return NewStringsFromBytes(data), nil
}

// NewStringsFromBytes 解析 .po 内容
func NewStringsFromBytes(data []byte) *Strings {
	po := gotext.NewPo()
	po.Parse(data)
	return &Strings{po: po}
}

// Get 返回键对应的文本，可带格式化参数
func (s *Strings) Get(key string, vars ...interface{}) string {
	if s != nil && s.po != nil {
		if v := s.po.Get(key); v != "" && v != key {
			if len(vars) > 0 {
				return fmt.Sprintf(v, vars...)
			}
			return v
		}
	}
	v, ok := builtinStrings[key]
	if !ok {
		log.Printf("[Strings] Missing key %s", key)
		return key
	}
	if len(vars) > 0 {
		return fmt.Sprintf(v, vars...)
	}
	return v
}
