// ABOUTME: Tests for the tool router and agent loop
// ABOUTME: Uses a scripted fake model that issues tool calls on demand

package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dvergara/nexo/internal/models"
)

// scriptedModel replays a fixed sequence of replies, recording every request
type scriptedModel struct {
	replies []openai.ChatCompletionMessage
	errs    []error
	calls   [][]openai.ChatCompletionMessage
}

func (m *scriptedModel) Chat(_ context.Context, messages []openai.ChatCompletionMessage, _ []openai.Tool) (openai.ChatCompletionMessage, error) {
	i := len(m.calls)
	m.calls = append(m.calls, append([]openai.ChatCompletionMessage(nil), messages...))
	if i < len(m.errs) && m.errs[i] != nil {
		return openai.ChatCompletionMessage{}, m.errs[i]
	}
	if i >= len(m.replies) {
		return m.replies[len(m.replies)-1], nil
	}
	return m.replies[i], nil
}

func textReply(content string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: content,
	}
}

func toolCallReply(id, name, arguments string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleAssistant,
		ToolCalls: []openai.ToolCall{
			{
				ID:   id,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      name,
					Arguments: arguments,
				},
			},
		},
	}
}

func echoTool(name string, log *[]Args) Tool {
	return Tool{
		Name:        name,
		Description: "herramienta de prueba",
		Parameters:  stringParams(map[string]string{"nombre": "nombre a saludar"}),
		Run: func(_ context.Context, args Args) string {
			*log = append(*log, args)
			return "hola " + args.String("nombre")
		},
	}
}

func TestNewRouter_DefaultRounds(t *testing.T) {
	r := NewRouter(&scriptedModel{}, nil, 0)
	if r.maxRounds != DefaultMaxRounds {
		t.Errorf("maxRounds = %d, want %d", r.maxRounds, DefaultMaxRounds)
	}
	r = NewRouter(&scriptedModel{}, nil, -3)
	if r.maxRounds != DefaultMaxRounds {
		t.Errorf("maxRounds = %d, want %d for negative input", r.maxRounds, DefaultMaxRounds)
	}
}

func TestAnswer_DirectAnswer(t *testing.T) {
	model := &scriptedModel{replies: []openai.ChatCompletionMessage{
		textReply("La respuesta directa."),
	}}
	r := NewRouter(model, nil, 5)

	answer, history, err := r.Answer(context.Background(), nil, "¿pregunta?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer != "La respuesta directa." {
		t.Errorf("answer = %q", answer)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d entries, want 2", len(history))
	}
	if history[0].Role != models.RoleUser || history[0].Content != "¿pregunta?" {
		t.Errorf("history[0] = %+v, want the user turn", history[0])
	}
	if history[1].Role != models.RoleAssistant || history[1].Content != answer {
		t.Errorf("history[1] = %+v, want the assistant turn", history[1])
	}
}

func TestAnswer_SystemPromptAndHistoryThreaded(t *testing.T) {
	model := &scriptedModel{replies: []openai.ChatCompletionMessage{textReply("ok")}}
	r := NewRouter(model, nil, 5)

	prior := []models.Message{
		{Role: models.RoleUser, Content: "hola"},
		{Role: models.RoleAssistant, Content: "buenas"},
	}
	if _, _, err := r.Answer(context.Background(), prior, "sigue"); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	sent := model.calls[0]
	if len(sent) != 4 {
		t.Fatalf("model saw %d messages, want system + 2 history + user", len(sent))
	}
	if sent[0].Role != openai.ChatMessageRoleSystem || sent[0].Content != SystemPrompt {
		t.Errorf("sent[0] = %+v, want the system prompt", sent[0])
	}
	if sent[1].Content != "hola" || sent[2].Content != "buenas" {
		t.Errorf("history not threaded in order: %+v", sent[1:3])
	}
	if sent[3].Role != openai.ChatMessageRoleUser || sent[3].Content != "sigue" {
		t.Errorf("sent[3] = %+v, want the new user message", sent[3])
	}
}

func TestAnswer_ToolCallThenAnswer(t *testing.T) {
	model := &scriptedModel{replies: []openai.ChatCompletionMessage{
		toolCallReply("call_1", "saludar", `{"nombre":"Ana"}`),
		textReply("Saludo entregado."),
	}}
	var ran []Args
	r := NewRouter(model, []Tool{echoTool("saludar", &ran)}, 5)

	answer, _, err := r.Answer(context.Background(), nil, "saluda a Ana")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer != "Saludo entregado." {
		t.Errorf("answer = %q", answer)
	}
	if len(ran) != 1 || ran[0].String("nombre") != "Ana" {
		t.Errorf("tool ran with %+v, want nombre=Ana", ran)
	}

	// The second request carries the assistant tool-call turn and the tool
	// result keyed by call ID.
	second := model.calls[1]
	last := second[len(second)-1]
	if last.Role != openai.ChatMessageRoleTool {
		t.Fatalf("last message role = %q, want tool", last.Role)
	}
	if last.ToolCallID != "call_1" {
		t.Errorf("ToolCallID = %q, want call_1", last.ToolCallID)
	}
	if last.Content != "hola Ana" {
		t.Errorf("tool result = %q, want hola Ana", last.Content)
	}
}

func TestAnswer_MultipleToolCallsInOrder(t *testing.T) {
	reply := openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleAssistant,
		ToolCalls: []openai.ToolCall{
			{ID: "c1", Type: openai.ToolTypeFunction, Function: openai.FunctionCall{Name: "saludar", Arguments: `{"nombre":"Ana"}`}},
			{ID: "c2", Type: openai.ToolTypeFunction, Function: openai.FunctionCall{Name: "saludar", Arguments: `{"nombre":"Luis"}`}},
		},
	}
	model := &scriptedModel{replies: []openai.ChatCompletionMessage{reply, textReply("listo")}}
	var ran []Args
	r := NewRouter(model, []Tool{echoTool("saludar", &ran)}, 5)

	if _, _, err := r.Answer(context.Background(), nil, "saluda a ambos"); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if len(ran) != 2 || ran[0].String("nombre") != "Ana" || ran[1].String("nombre") != "Luis" {
		t.Errorf("tool calls ran as %+v, want Ana then Luis", ran)
	}
}

func TestAnswer_UnknownTool(t *testing.T) {
	model := &scriptedModel{replies: []openai.ChatCompletionMessage{
		toolCallReply("call_1", "inexistente", `{}`),
		textReply("fin"),
	}}
	r := NewRouter(model, nil, 5)

	if _, _, err := r.Answer(context.Background(), nil, "usa algo"); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	second := model.calls[1]
	last := second[len(second)-1]
	want := "❌ Herramienta desconocida: inexistente"
	if last.Content != want {
		t.Errorf("tool result = %q, want %q", last.Content, want)
	}
}

func TestAnswer_InvalidArguments(t *testing.T) {
	var ran []Args
	model := &scriptedModel{replies: []openai.ChatCompletionMessage{
		toolCallReply("call_1", "saludar", `{"nombre": `),
		textReply("fin"),
	}}
	r := NewRouter(model, []Tool{echoTool("saludar", &ran)}, 5)

	if _, _, err := r.Answer(context.Background(), nil, "saluda"); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if len(ran) != 0 {
		t.Errorf("tool ran %d times with invalid args, want 0", len(ran))
	}
	second := model.calls[1]
	last := second[len(second)-1]
	if !strings.HasPrefix(last.Content, "❌ Argumentos inválidos para saludar:") {
		t.Errorf("tool result = %q, want invalid-arguments message", last.Content)
	}
}

func TestAnswer_RoundLimit(t *testing.T) {
	var ran []Args
	model := &scriptedModel{replies: []openai.ChatCompletionMessage{
		toolCallReply("call_1", "saludar", `{"nombre":"Ana"}`),
	}}
	r := NewRouter(model, []Tool{echoTool("saludar", &ran)}, 3)

	answer, history, err := r.Answer(context.Background(), nil, "bucle")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer != IncompleteAnswer {
		t.Errorf("answer = %q, want the incomplete-answer outcome", answer)
	}
	if len(model.calls) != 3 {
		t.Errorf("model called %d times, want 3", len(model.calls))
	}
	// The bounded outcome still lands in the history.
	if history[len(history)-1].Content != IncompleteAnswer {
		t.Errorf("last history entry = %+v, want the incomplete answer", history[len(history)-1])
	}
}

func TestAnswer_ModelError(t *testing.T) {
	model := &scriptedModel{errs: []error{errors.New("backend caído")}}
	r := NewRouter(model, nil, 5)

	prior := []models.Message{{Role: models.RoleUser, Content: "hola"}}
	_, history, err := r.Answer(context.Background(), prior, "pregunta")
	if err == nil {
		t.Fatal("Answer() expected error")
	}
	// A failed round leaves the history untouched.
	if len(history) != 1 {
		t.Errorf("history has %d entries after failure, want 1", len(history))
	}
}

func TestArgs_String(t *testing.T) {
	args := Args{"texto": "hola", "numero": 3.0}
	if got := args.String("texto"); got != "hola" {
		t.Errorf("String(texto) = %q, want hola", got)
	}
	if got := args.String("numero"); got != "" {
		t.Errorf("String(numero) = %q, want empty for non-string", got)
	}
	if got := args.String("ausente"); got != "" {
		t.Errorf("String(ausente) = %q, want empty", got)
	}
}

func TestStringParams(t *testing.T) {
	schema := stringParams(map[string]string{"a": "primero", "b": "segundo"}, "a")
	if schema["type"] != "object" {
		t.Errorf("type = %v, want object", schema["type"])
	}
	props := schema["properties"].(map[string]any)
	if len(props) != 2 {
		t.Errorf("got %d properties, want 2", len(props))
	}
	required := schema["required"].([]string)
	if len(required) != 1 || required[0] != "a" {
		t.Errorf("required = %v, want [a]", required)
	}
}
