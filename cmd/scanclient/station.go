package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/internal/qrcode"
	"github.com/bouvin87/BarcodeBuddy/internal/scanbuffer"
	"github.com/sirupsen/logrus"
)

type reportAPI interface {
	CreateScanSession(ctx context.Context, deliveryNote string, barcodes []string) (*models.ScanSession, error)
	SendEmail(ctx context.Context, id int) (*models.SendEmailResponse, error)
}

// station is one scanning terminal: the buffer for the delivery being
// scanned and the server it reports to
type station struct {
	api          reportAPI
	buf          *scanbuffer.Buffer
	deliveryNote string
	out          io.Writer
	log          *logrus.Entry

	// saved session for the current buffer, reused when a send is retried
	savedID int
}

func newStation(api reportAPI, deliveryNote string, out io.Writer, log *logrus.Entry) *station {
	return &station{
		api:          api,
		buf:          scanbuffer.New(),
		deliveryNote: deliveryNote,
		out:          out,
		log:          log,
	}
}

// handle runs one command; it returns false when the client should exit
func (s *station) handle(ctx context.Context, cmd command) bool {
	switch cmd.kind {
	case cmdEmpty:
	case cmdScan, cmdStructured:
		s.add(cmd.code)
	case cmdRemove:
		removed, err := s.buf.Remove(cmd.index)
		if err != nil {
			fmt.Fprintf(s.out, "No code number %d\n", cmd.index+1)
			return true
		}
		s.savedID = 0
		fmt.Fprintf(s.out, "Removed %s\n", removed.Value)
	case cmdClear:
		s.buf.Clear()
		s.savedID = 0
		fmt.Fprintln(s.out, "List cleared")
	case cmdList:
		s.list()
	case cmdSummary:
		s.summary()
	case cmdDeliveryNote:
		s.deliveryNote = cmd.arg
		s.savedID = 0
		fmt.Fprintf(s.out, "Delivery note %s\n", s.deliveryNote)
	case cmdSend:
		s.send(ctx)
	case cmdHelp:
		fmt.Fprintln(s.out, helpText)
	case cmdQuit:
		if n := s.buf.Len(); n > 0 {
			fmt.Fprintf(s.out, "Discarding %d unsent codes\n", n)
		}
		return false
	}
	return true
}

func (s *station) add(code string) {
	entry, err := s.buf.Add(code)
	if errors.Is(err, scanbuffer.ErrDuplicate) {
		fmt.Fprintf(s.out, "\aAlready scanned: %s\n", code)
		return
	}
	s.savedID = 0

	if p, ok := qrcode.Parse(entry.Value); ok {
		fmt.Fprintf(s.out, "%3d  %s  order %s  article %s  batch %s  %s\n",
			s.buf.Len(), entry.Timestamp, p.OrderNumber, p.ArticleNumber, p.BatchNumber, qrcode.FormatWeight(p.Weight))
		return
	}
	fmt.Fprintf(s.out, "%3d  %s  %s\n", s.buf.Len(), entry.Timestamp, entry.Value)
}

func (s *station) list() {
	entries := s.buf.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "No codes scanned")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(s.out, "%3d  %s  %s\n", i+1, e.Timestamp, e.Value)
	}
}

func (s *station) summary() {
	sum := qrcode.Summarize(s.buf.Values())
	fmt.Fprintf(s.out, "Codes: %d (%d structured)\n", sum.TotalCount, sum.StructuredCount)
	for _, g := range sum.Orders {
		fmt.Fprintf(s.out, "  Order %s: %d items, %s\n", g.OrderNumber, len(g.Items), qrcode.FormatWeight(g.TotalWeight))
	}
	fmt.Fprintf(s.out, "Total weight: %s\n", sum.TotalWeightFormatted)
}

// send saves the buffer as a scan session and e-mails it. The buffer is
// only cleared once the report has gone out.
func (s *station) send(ctx context.Context) {
	if s.deliveryNote == "" {
		fmt.Fprintln(s.out, "Set a delivery note number first (:dn <number>)")
		return
	}
	if s.buf.Len() == 0 {
		fmt.Fprintln(s.out, "Nothing to send")
		return
	}

	if s.savedID == 0 {
		session, err := s.api.CreateScanSession(ctx, s.deliveryNote, s.buf.Values())
		if err != nil {
			s.log.WithError(err).Error("saving scan session failed")
			fmt.Fprintf(s.out, "Could not save: %v\n", err)
			return
		}
		s.savedID = session.ID
	}

	resp, err := s.api.SendEmail(ctx, s.savedID)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			fmt.Fprintln(s.out, apiErr.Message)
		} else {
			fmt.Fprintf(s.out, "Could not send: %v\n", err)
		}
		s.log.WithError(err).WithField("session_id", s.savedID).Error("sending report failed")
		return
	}

	s.log.WithFields(logrus.Fields{
		"session_id":    s.savedID,
		"delivery_note": s.deliveryNote,
		"barcodes":      s.buf.Len(),
	}).Info("report sent")
	fmt.Fprintln(s.out, resp.Message)

	s.buf.Clear()
	s.savedID = 0
	s.deliveryNote = ""
}
