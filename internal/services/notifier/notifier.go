// Package notifier отправляет подписчикам письма об открытии нового дня.
package notifier

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/smtp"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

// Service читает события из очереди и отправляет письма.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// HandleDayUnlocked обрабатывает сообщение очереди progress.day_unlocked.
// Нечитаемые сообщения и события без адреса подтверждаются и пропускаются,
// ошибка отправки возвращает сообщение в очередь.
func (s *Service) HandleDayUnlocked(body []byte) error {
	const op = "notifier.HandleDayUnlocked"
	log := s.log.With(slog.String("op", op))

	var event models.DayUnlockedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error("failed to unmarshal message body, dropping", sl.Err(err))
		return nil
	}
	log = log.With(sl.Subscriber(event.SubscriberID), sl.Day(event.Day))
	if event.Email == "" {
		log.Info("subscriber has no email, skipping")
		return nil
	}

	subject, text := render(event)
	if err := s.sendEmail(event.Email, subject, text); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("email sent successfully", slog.String("source", event.Source))
	return nil
}

func render(event models.DayUnlockedEvent) (subject, text string) {
	subject = fmt.Sprintf("Estrella del Alba: el día %d ya está disponible", event.Day)
	intro := "Tu nuevo día de práctica ya está abierto."
	if event.Source == models.UnlockSourceCompletion {
		intro = fmt.Sprintf("¡Enhorabuena por completar el día %d!", event.Day-1)
	}
	text = fmt.Sprintf("Hola,\r\n\r\n%s\r\nEl día %d te espera en la aplicación.\r\n\r\nCon cariño,\r\nEstrella del Alba",
		intro, event.Day)
	return subject, text
}

func (s *Service) sendEmail(to, subject, bodyText string) error {
	from := s.transport.GetSMTPUser()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			s.log.Debug("smtp client close", sl.Err(closeErr))
		}
	}()

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("mail from %s: %w", from, err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to %s: %w", to, err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err = wc.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}
	if err = client.Quit(); err != nil {
		return fmt.Errorf("quit: %w", err)
	}
	return nil
}
