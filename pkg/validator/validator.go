package validator

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	enloc "github.com/go-playground/locales/en"
	zhloc "github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
	zhtrans "github.com/go-playground/validator/v10/translations/zh"
)

// gin binding validator的翻译器，按配置语言输出校验提示

var (
	once  sync.Once
	trans ut.Translator
)

// LazyInitGinValidator 替换gin默认validator的提示语言，必须在处理请求前调用一次
func LazyInitGinValidator(language string) {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		enLoc := enloc.New()
		zhLoc := zhloc.New()
		uni := ut.New(enLoc, enLoc, zhLoc)

		switch strings.ToLower(language) {
		case "zh", "zh-cn":
			trans, _ = uni.GetTranslator("zh")
			_ = zhtrans.RegisterDefaultTranslations(v, trans)
		default:
			trans, _ = uni.GetTranslator("en")
			_ = entrans.RegisterDefaultTranslations(v, trans)
		}
	})
}

// Translate 将binding错误翻译成一条可读的提示
func Translate(err error) string {
	if err == nil {
		return ""
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || trans == nil {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(trans))
	}
	return strings.Join(msgs, "; ")
}
