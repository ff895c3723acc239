package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hospital-portal/core/utils"
)

type seedFAQ struct {
	Category string
	Question string
	Answer   string
}

var initialFAQs = []seedFAQ{
	{
		Category: "インシデント分類",
		Question: "インシデントとアクシデントの違いは何ですか？",
		Answer:   "インシデントは「患者に害を与えることなく、医療上望ましくない事象」で、アクシデントは「患者に実害が生じた事象」です。インシデントには「ヒヤリハット」も含まれます。",
	},
	{
		Category: "レポート作成方法",
		Question: "インシデントレポートはいつまでに提出すべきですか？",
		Answer:   "インシデント発生から24時間以内の提出が原則です。緊急度の高い事例については、発見次第速やかに口頭で報告し、その後書面での報告を行ってください。",
	},
	{
		Category: "緊急時対応",
		Question: "重大なインシデントが発生した場合の対応手順は？",
		Answer:   "1. 患者の安全確保 2. 医師・看護師長への即座の報告 3. 必要に応じて医療安全管理者への連絡 4. 事実の記録と保存 5. 24時間以内のインシデントレポート提出",
	},
	{
		Category: "システム操作",
		Question: "インシデントレポートシステムにログインできません",
		Answer:   "システム管理者に連絡してください。一時的にシステムが利用できない場合は、紙媒体での報告を行い、システム復旧後に入力してください。",
	},
	{
		Category: "レポート作成方法",
		Question: "匿名でのレポート提出は可能ですか？",
		Answer:   "はい、可能です。ただし、詳細な調査が必要な場合は、後日ヒアリングをお願いする場合があります。医療安全の向上が目的であり、個人の責任追及が目的ではありません。",
	},
}

// SeedFAQs inserts the starter entries when the faqs table is empty. It runs in
// one transaction and reports how many rows were written.
func SeedFAQs(ctx context.Context, db *sql.DB, logger *utils.Logger) (int, error) {
	dialect := DialectOf(db)
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	var count int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM faqs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count faqs: %w", err)
	}
	if count > 0 {
		logger.Debugf("faqs already hold %d rows, skipping seed", count)
		return 0, nil
	}
	stmt, err := tx.PrepareContext(ctx, dialect.rebind(`INSERT INTO faqs(category, question, answer, created_at, updated_at) VALUES(?,?,?,?,?)`))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	base := utils.NowUTC().Truncate(time.Millisecond)
	for i, faq := range initialFAQs {
		// spread by a millisecond so newest-first keeps the seed order stable
		ts := dialect.timeArg(base.Add(time.Duration(i) * time.Millisecond))
		if _, err := stmt.ExecContext(ctx, faq.Category, faq.Question, faq.Answer, ts, ts); err != nil {
			return 0, fmt.Errorf("seed faq %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	logger.Printf("seeded %d faqs", len(initialFAQs))
	return len(initialFAQs), nil
}
