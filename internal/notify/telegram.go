package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type TelegramMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
	Parse  string `json:"parse_mode"`
}

func init() {
	_ = godotenv.Load() // 自动加载 .env 文件
}

func SendTelegramMessage(chatID string, content string) error {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		return fmt.Errorf("missing TELEGRAM_BOT_TOKEN in env")
	}

	msg := TelegramMessage{
		ChatID: chatID,
		Text:   content,
		Parse:  "Markdown",
	}
	body, _ := json.Marshal(msg)
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", botToken)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// NotifyGatewayAlert 网关异常报警，异步发送避免阻塞下单链路
// chat id 未配置时静默跳过，报警通道缺失不影响交易
func NotifyGatewayAlert(level, title, url string, req interface{}, extra map[string]string) {
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if chatID == "" {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*[%s] %s*\n", strings.ToUpper(level), escapeMarkdown(title)))
	sb.WriteString(fmt.Sprintf("*网关接口:* %s\n", escapeMarkdown(url)))
	sb.WriteString(fmt.Sprintf("*请求时间:* %s\n", time.Now().Format("2006-01-02 15:04:05")))

	for k, v := range extra {
		if v != "" {
			sb.WriteString(fmt.Sprintf("%s: %s\n", escapeMarkdown(k), escapeMarkdown(v)))
		}
	}

	if reqJSON, err := json.Marshal(req); err == nil && string(reqJSON) != "{}" {
		sb.WriteString("\n*请求报文:*\n")
		sb.WriteString(fmt.Sprintf("`%s`\n", escapeMarkdown(string(reqJSON))))
	}

	go func() {
		if err := SendTelegramMessage(chatID, sb.String()); err != nil {
			log.Printf("Telegram 消息发送失败: %v", err)
		}
	}()
}

// escapeMarkdown 转义 Telegram Markdown 特殊字符
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
