package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const (
	SubjectReplyToComment = "💬 Someone replied to your comment"
	SubjectReplyToPost    = "💬 New reply on your Guestbook post"
	SubjectAdminReply     = "🔔 Official Admin Response"
	SubjectMessageReply   = "Reply to your message on A-1412.dev"
)

var templates = template.Must(template.New("mail").Funcs(template.FuncMap{
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}).Parse(`
{{define "layout-start"}}<div style="font-family: sans-serif; line-height: 1.5; color: #333; max-width: 560px; margin: 0 auto;">{{end}}
{{define "layout-end"}}<hr style="border: none; border-top: 1px solid #eee;"><p style="color: #888; font-size: 12px;">You are receiving this because you posted on the guestbook.</p></div>{{end}}

{{define "reply"}}{{template "layout-start"}}
<p>Hi <strong>{{.RecipientName}}</strong>,</p>
<p><strong>{{.SenderName}}</strong> replied:</p>
<div style="background: #f9f9f9; padding: 15px; border-left: 4px solid #ccc; margin: 20px 0; color: #555;">{{range $i, $l := lines .ReplyContent}}{{if $i}}<br>{{end}}{{$l}}{{end}}</div>
<p><a href="{{.PostURL}}">View the conversation</a></p>
{{template "layout-end"}}{{end}}

{{define "admin-reply"}}{{template "layout-start"}}
<p>Hi <strong>{{.RecipientName}}</strong>,</p>
<p>The site admin responded to your guestbook post:</p>
<div style="background: #f9f9f9; padding: 15px; border-left: 4px solid #111; margin: 20px 0; color: #555;">{{range $i, $l := lines .ReplyContent}}{{if $i}}<br>{{end}}{{$l}}{{end}}</div>
<p><a href="{{.PostURL}}">Open the guestbook</a></p>
{{template "layout-end"}}{{end}}

{{define "message-reply"}}<div style="font-family: sans-serif; line-height: 1.5; color: #333;">
<p>Hi <strong>{{.UserName}}</strong>,</p>
<p>Thanks for reaching out! Here is the reply to your message:</p>
<div style="background: #f9f9f9; padding: 15px; border-left: 4px solid #ccc; margin: 20px 0; font-style: italic; color: #555;">"{{.OriginalMessage}}"</div>
<div style="font-size: 16px; margin-top: 20px;">{{range $i, $l := lines .ReplyContent}}{{if $i}}<br>{{end}}{{$l}}{{end}}</div>
<br><hr style="border: none; border-top: 1px solid #eee;">
<p style="color: #888; font-size: 12px;">Best regards,<br>A-1412 Admin Dashboard</p>
</div>{{end}}
`))

// ReplyNotification is sent to the author of a post or comment that got a reply.
type ReplyNotification struct {
	RecipientName string
	SenderName    string
	ReplyContent  string
	PostURL       string
}

// AdminReplyNotification is sent when the admin answers a guestbook post.
type AdminReplyNotification struct {
	RecipientName string
	ReplyContent  string
	PostURL       string
}

// MessageReply answers a contact form message.
type MessageReply struct {
	UserName        string
	OriginalMessage string
	ReplyContent    string
}

func (d ReplyNotification) Render() (string, error)      { return render("reply", d) }
func (d AdminReplyNotification) Render() (string, error) { return render("admin-reply", d) }
func (d MessageReply) Render() (string, error)           { return render("message-reply", d) }

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}
