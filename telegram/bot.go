package telegram

import (
	"fmt"
	"log"
	"powerdash/dashboard"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// StatusProvider reports the dataset currently served
type StatusProvider interface {
	Summary() *dashboard.Summary
}

// TgBot implements dashboard.EventListener
type TgBot struct {
	api           *tgbotapi.BotAPI
	status        StatusProvider
	mutex         sync.RWMutex
	subscriptions map[int64]string
	event         chan MessageContent
	send          chan MessageContent
}

type MessageContent struct {
	ChatID int64
	Text   string
}

func NewBot(apiKey string) (*TgBot, error) {
	tgBot := &TgBot{
		subscriptions: make(map[int64]string),
		event:         make(chan MessageContent, 100),
		send:          make(chan MessageContent, 100),
	}
	api, err := tgbotapi.NewBotAPI(apiKey)
	if err != nil {
		return nil, err
	}
	tgBot.api = api
	return tgBot, nil
}

func (b *TgBot) SetStatusProvider(status StatusProvider) {
	b.status = status
}

func (b *TgBot) Start() {
	go b.sendPump()
	go b.eventPump()
	go b.updatesPump()
}

// Start listening for updates
func (b *TgBot) updatesPump() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		log.Printf("bot: error getting updates: %v", err)
		return
	}
	for update := range updates {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		chatID := update.Message.Chat.ID
		b.send <- MessageContent{ChatID: chatID, Text: b.handleCommand(chatID, update.Message.Command(), update.Message.From)}
	}
}

func (b *TgBot) handleCommand(chatID int64, command string, from *tgbotapi.User) string {
	switch command {
	case "start":
		user := ""
		if from != nil {
			user = from.UserName
		}
		b.mutex.Lock()
		b.subscriptions[chatID] = user
		b.mutex.Unlock()
		return fmt.Sprintf("Hello *%v*, you are now subscribed to dataset updates", sanitize(user))
	case "stop":
		b.mutex.Lock()
		delete(b.subscriptions, chatID)
		b.mutex.Unlock()
		return "Your subscription has been removed"
	case "status":
		return b.composeStatusMessage()
	default:
		return sanitize(fmt.Sprintf("Unknown command /%s", command))
	}
}

// eventPump sending events to all subscribers
func (b *TgBot) eventPump() {
	for event := range b.event {
		b.mutex.RLock()
		chats := make([]int64, 0, len(b.subscriptions))
		for chatID := range b.subscriptions {
			chats = append(chats, chatID)
		}
		b.mutex.RUnlock()
		for _, chatID := range chats {
			b.sendMessage(chatID, event.Text)
		}
	}
}

// sendPump sending messages to users
func (b *TgBot) sendPump() {
	for event := range b.send {
		b.sendMessage(event.ChatID, event.Text)
	}
}

// sendMessage common routine to send a message via bot API
func (b *TgBot) sendMessage(id int64, text string) {
	msg := tgbotapi.NewMessage(id, text)
	msg.ParseMode = "MarkdownV2"
	_, err := b.api.Send(msg)
	if err != nil {
		// maybe error was while parsing, so we can send a message about this error
		msg = tgbotapi.NewMessage(id, fmt.Sprintf("Error: %v", err))
		_, err = b.api.Send(msg)
		if err != nil {
			log.Printf("bot: error sending message: %v", err)
		}
	}
}

func (b *TgBot) OnDatasetLoaded(summary *dashboard.Summary) {
	b.queueEvent(MessageContent{Text: composeLoadedMessage(summary)})
}

func (b *TgBot) OnDatasetFailed(path string, err error) {
	b.queueEvent(MessageContent{Text: composeFailedMessage(path, err)})
}

// queueEvent never blocks the caller; notices are dropped while the queue is full
func (b *TgBot) queueEvent(content MessageContent) {
	select {
	case b.event <- content:
	default:
		log.Printf("bot: event queue is full, dropping notice")
	}
}

func composeLoadedMessage(summary *dashboard.Summary) string {
	msg := fmt.Sprintf("*Dataset loaded*: `%v`\n", sanitize(summary.Path))
	msg += fmt.Sprintf("Rows: %v\n", summary.Rows)
	msg += fmt.Sprintf("Energy types: %v\n", sanitize(strings.Join(summary.EnergyTypes, ", ")))
	if len(summary.MapGaps) > 0 {
		msg += fmt.Sprintf("No boundary for: %v\n", sanitize(strings.Join(summary.MapGaps, ", ")))
	}
	return msg
}

func composeFailedMessage(path string, err error) string {
	msg := fmt.Sprintf("*Dataset failed*: `%v`\n", sanitize(path))
	msg += fmt.Sprintf("%v\n", sanitize(err.Error()))
	return msg
}

// compose status message
func (b *TgBot) composeStatusMessage() string {
	msg := "Status info:\n\n"
	if b.status != nil {
		if summary := b.status.Summary(); summary != nil {
			msg += composeLoadedMessage(summary)
			msg += fmt.Sprintf("Loaded at: %v\n", sanitize(summary.LoadedAt.Format("2006-01-02 15:04:05")))
		} else {
			msg += "No dataset loaded\n"
		}
	}
	b.mutex.RLock()
	msg += fmt.Sprintf("Active subscriptions: %v", len(b.subscriptions))
	b.mutex.RUnlock()
	return msg
}

func sanitize(input string) string {
	// reserved characters of MarkdownV2
	reservedChars := "\\`*_{}[]()#+-.!|=<>~"
	var sanitized strings.Builder
	for _, char := range input {
		if strings.ContainsRune(reservedChars, char) {
			sanitized.WriteRune('\\')
		}
		sanitized.WriteRune(char)
	}
	return sanitized.String()
}
