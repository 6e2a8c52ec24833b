package handlers

import (
	"encoding/xml"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peartree/finbot/internal/bot"
)

// Placeholder identity when the transport sends no From field.
const unknownSender = "desconhecido"

// twiML is the Twilio messaging response envelope.
type twiML struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Peartree na área. Pode falar, miserável.")
	}
}

// WebhookHandler receives one inbound message and answers it synchronously.
// The response is always HTTP 200 with a TwiML envelope, internal errors
// included: the executor swallows store failures into an error reply.
func WebhookHandler(exec *bot.Executor) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := c.PostForm("Body")
		from := c.PostForm("From")
		if from == "" {
			from = unknownSender
		}

		log.Printf("📩 mensagem de %s: %q", from, body)
		reply := exec.Handle(c.Request.Context(), from, body)

		out, err := xml.Marshal(twiML{Message: reply})
		if err != nil {
			log.Printf("erro ao montar TwiML: %v", err)
			out = []byte("<Response><Message>💥 Deu ruim no meu cofre, tente de novo mais tarde, miserável!</Message></Response>")
		}
		c.Data(http.StatusOK, "text/xml", append([]byte(xml.Header), out...))
	}
}
