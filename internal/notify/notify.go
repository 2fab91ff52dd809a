// Package notify sends the email pairs (visitor + staff) the site emits.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"html/template"
	"strings"

	"emb-site/internal/domain/donations"
	"emb-site/internal/domain/settings"
	"emb-site/internal/infra/mailer"

	"go.uber.org/zap"
)

type Sender interface {
	Send(e mailer.Email) error
}

// GeneralSource provides the sender identity and staff inbox.
type GeneralSource interface {
	General(ctx context.Context) (settings.General, error)
}

type Notifier struct {
	mail    Sender
	general GeneralSource
	log     *zap.Logger
}

func New(mail Sender, general GeneralSource, log *zap.Logger) *Notifier {
	return &Notifier{mail: mail, general: general, log: log}
}

type pair struct {
	userTo    string
	user      mailer.Message
	admin     mailer.Message
	adminFrom string
}

func (n *Notifier) sendPair(ctx context.Context, p pair) error {
	g, err := n.general.General(ctx)
	if err != nil {
		n.log.Warn("settings/general unavailable for email sender", zap.Error(err))
	}
	site := g.SiteName
	if site == "" {
		site = "EMB"
	}
	p.user.SiteName, p.admin.SiteName = site, site
	staff := g.NotifyEmail
	if staff == "" {
		staff = g.Email
	}

	var errs []error
	if p.userTo != "" {
		text, body, err := mailer.UserEmail(p.user)
		if err == nil {
			err = n.mail.Send(mailer.Email{
				To: p.userTo, FromName: firstNonEmpty(g.SenderName, site), FromAddr: g.SenderEmail,
				ReplyTo: g.Email, Subject: p.user.Subject, TextBody: text, HTMLBody: body,
			})
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("user email: %w", err))
		}
	}
	if staff != "" {
		text, body, err := mailer.AdminEmail(p.admin)
		if err == nil {
			err = n.mail.Send(mailer.Email{
				To: staff, FromName: firstNonEmpty(g.SenderName, site), FromAddr: g.SenderEmail,
				ReplyTo: p.adminFrom, Subject: p.admin.Subject, TextBody: text, HTMLBody: body,
			})
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("admin email: %w", err))
		}
	} else {
		n.log.Warn("no staff inbox configured in settings/general")
	}
	return errors.Join(errs...)
}

func (n *Notifier) DonationApproved(ctx context.Context, d donations.Donation) error {
	amount := formatAmount(d.Amount)
	return n.sendPair(ctx, pair{
		userTo: d.Email,
		user: mailer.Message{
			Subject: "¡Gracias por tu donación!",
			Title:   "¡Gracias, " + d.Name + "!",
			Body: lines(
				"Recibimos tu donación "+kindPhrase(d.Type)+" de <b>$"+amount+"</b>.",
				"Tu aporte sostiene las clases y los proyectos de la escuela.",
			),
		},
		admin: mailer.Message{
			Subject: "Nueva donación aprobada: $" + amount,
			Title:   "Donación aprobada",
			Body:    fields(d, amount),
		},
		adminFrom: d.Email,
	})
}

func (n *Notifier) DonationCancelled(ctx context.Context, d donations.Donation) error {
	amount := formatAmount(d.Amount)
	return n.sendPair(ctx, pair{
		userTo: d.Email,
		user: mailer.Message{
			Subject: "Tu donación fue cancelada",
			Title:   "Donación cancelada",
			Body: lines(
				"Cancelaste la donación "+kindPhrase(d.Type)+" de <b>$"+amount+"</b>. No se realizó ningún cobro.",
				"Si fue un error, podés volver a donar desde nuestro sitio.",
			),
		},
		admin: mailer.Message{
			Subject: "Donación cancelada: $" + amount,
			Title:   "Donación cancelada por el donante",
			Body:    fields(d, amount),
		},
		adminFrom: d.Email,
	})
}

// Contact is a visitor's contact or enrolment request.
type Contact struct {
	Form       string
	Name       string
	Email      string
	Phone      string
	Message    string
	Instrument string
	Age        string
}

func (n *Notifier) ContactReceived(ctx context.Context, c Contact) error {
	subject := "Nueva consulta"
	title := "Recibimos tu consulta"
	if c.Form == "clases" {
		subject = "Nueva inscripción"
		title = "Recibimos tu inscripción"
	}

	var b strings.Builder
	b.WriteString("<ul>")
	for _, kv := range [][2]string{
		{"Formulario", c.Form}, {"Nombre", c.Name}, {"Email", c.Email}, {"Teléfono", c.Phone},
		{"Instrumento", c.Instrument}, {"Edad", c.Age},
	} {
		if kv[1] != "" {
			fmt.Fprintf(&b, "<li>%s: %s</li>", kv[0], html.EscapeString(kv[1]))
		}
	}
	b.WriteString("</ul>")
	if c.Message != "" {
		b.WriteString("<p>" + html.EscapeString(c.Message) + "</p>")
	}

	return n.sendPair(ctx, pair{
		userTo: c.Email,
		user: mailer.Message{
			Subject: title,
			Title:   "¡Hola, " + c.Name + "!",
			Body:    lines("Gracias por escribirnos. Te responderemos a la brevedad."),
		},
		admin: mailer.Message{
			Subject: subject + ": " + c.Name,
			Title:   subject,
			Body:    template.HTML(b.String()),
		},
		adminFrom: c.Email,
	})
}

func fields(d donations.Donation, amount string) template.HTML {
	return template.HTML(fmt.Sprintf(
		"<ul><li>Nombre: %s</li><li>Email: %s</li><li>Monto: $%s</li><li>Tipo: %s</li><li>Referencia: %s</li></ul>",
		html.EscapeString(d.Name), html.EscapeString(d.Email), amount, d.Type.Label(), html.EscapeString(d.ID)))
}

// lines wraps trusted sentences into paragraphs.
func lines(ps ...string) template.HTML {
	var b strings.Builder
	for _, p := range ps {
		b.WriteString("<p>" + p + "</p>")
	}
	return template.HTML(b.String())
}

func kindPhrase(k donations.Kind) string {
	if k == donations.KindSubscription {
		return "mensual"
	}
	return "única"
}

// formatAmount renders whole currency units with dot thousands separators.
func formatAmount(v int64) string {
	s := fmt.Sprintf("%d", v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
