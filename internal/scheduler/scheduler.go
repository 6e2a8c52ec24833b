// Package scheduler runs the three periodic reminder jobs: daily balance
// digest, hourly loan due-reminders and daily bill due-reminders. The jobs
// share nothing with the webhook path besides the ledger store.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/peartree/finbot/internal/notify"
	"github.com/peartree/finbot/internal/persona"
	"github.com/peartree/finbot/internal/storage"
)

type Scheduler struct {
	store     storage.LedgerStore
	notifier  notify.Notifier
	persona   *persona.Persona
	defaultTo string
	cron      *cron.Cron
	now       func() time.Time
}

func New(store storage.LedgerStore, notifier notify.Notifier, p *persona.Persona, defaultTo string) *Scheduler {
	return &Scheduler{
		store:     store,
		notifier:  notifier,
		persona:   p,
		defaultTo: defaultTo,
		cron:      cron.New(),
		now:       time.Now,
	}
}

func (s *Scheduler) Start() error {
	jobs := []struct {
		spec string
		run  func(context.Context)
	}{
		{"0 9 * * *", s.RunDailyDigest},
		{"0 * * * *", s.RunLoanReminders},
		{"30 9 * * *", s.RunBillReminders},
	}
	for _, job := range jobs {
		run := job.run
		if _, err := s.cron.AddFunc(job.spec, func() { run(context.Background()) }); err != nil {
			return fmt.Errorf("erro ao agendar job: %w", err)
		}
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunDailyDigest pushes the current balance to every phone with transaction
// history. One failed send never aborts the rest of the scan.
func (s *Scheduler) RunDailyDigest(ctx context.Context) {
	phones, err := s.store.PhonesWithTransactions(ctx)
	if err != nil {
		log.Printf("resumo diário: %v", err)
		return
	}

	for _, phone := range phones {
		balance, err := s.store.Balance(ctx, phone)
		if err != nil {
			log.Printf("resumo diário de %s: %v", phone, err)
			continue
		}

		to := phone
		if to == "" {
			to = s.defaultTo
		}
		body := fmt.Sprintf("💰 Bom dia, miserável! Seu saldo atual é R$%s. %s",
			balance.StringFixed(2), s.persona.Flavor(persona.PoolDefault))
		if err := s.notifier.Send(ctx, to, body); err != nil {
			log.Printf("envio do resumo para %s: %v", to, err)
		}
	}
}

// RunLoanReminders notifies every unpaid loan within one whole day of its
// due date, overdue included. A loan inside the window is re-notified every
// firing until paid, there is no de-duplication.
func (s *Scheduler) RunLoanReminders(ctx context.Context) {
	deadline := s.now().Add(48 * time.Hour)
	loans, err := s.store.UnpaidLoansDueBy(ctx, deadline)
	if err != nil {
		log.Printf("cobrança de empréstimos: %v", err)
		return
	}

	for _, loan := range loans {
		body := fmt.Sprintf("💸 Seu empréstimo de R$%s vence dia %s. %s",
			loan.Amount.StringFixed(2), loan.DueAt.Format("02/01/2006"), s.persona.Flavor(persona.PoolReminder))
		if err := s.notifier.Send(ctx, loan.Phone, body); err != nil {
			log.Printf("cobrança do empréstimo %d: %v", loan.ID, err)
		}
	}
}

// RunBillReminders notifies bills due within the next two days and marks
// them notified, so each bill produces a single push.
func (s *Scheduler) RunBillReminders(ctx context.Context) {
	now := s.now()
	bills, err := s.store.BillsDueBetween(ctx, now, now.AddDate(0, 0, 2))
	if err != nil {
		log.Printf("lembrete de contas: %v", err)
		return
	}

	for _, bill := range bills {
		body := fmt.Sprintf("🧾 A conta \"%s\" de R$%s vence dia %s. %s",
			bill.Description, bill.Amount.StringFixed(2), bill.DueDate.Format("02/01/2006"), s.persona.Flavor(persona.PoolReminder))
		if err := s.notifier.Send(ctx, bill.Phone, body); err != nil {
			log.Printf("lembrete da conta %d: %v", bill.ID, err)
			continue
		}
		if err := s.store.MarkBillNotified(ctx, bill.ID); err != nil {
			log.Printf("marcação da conta %d: %v", bill.ID, err)
		}
	}
}
