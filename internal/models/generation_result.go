package models

// GenerationResult - результат одной генерации: исходный промпт и список URL
// сгенерированных изображений. Нигде не сохраняется.
type GenerationResult struct {
	Prompt string   `json:"prompt"`
	Output []string `json:"output"`
}

// First возвращает первый URL из Output. ok == false, если изображений нет.
func (r GenerationResult) First() (url string, ok bool) {
	if len(r.Output) == 0 {
		return "", false
	}
	return r.Output[0], true
}

// GenerationOutcome - либо результат, либо ошибка, но не оба сразу.
type GenerationOutcome struct {
	Result *GenerationResult
	Err    error
}

// Success оборачивает удачный результат.
func Success(result GenerationResult) GenerationOutcome {
	if result.Output == nil {
		result.Output = []string{}
	}
	return GenerationOutcome{Result: &result}
}

// Failure оборачивает ошибку генерации.
func Failure(err error) GenerationOutcome {
	return GenerationOutcome{Err: err}
}

// Failed сообщает, завершилась ли генерация ошибкой.
func (o GenerationOutcome) Failed() bool {
	return o.Err != nil || o.Result == nil
}
