package db

import (
	"context"
	"fmt"
	"strings"
)

// Key は一意性チェックの対象カラムと値の組。
type Key struct {
	Col string
	Val any
}

// ExistsWhere は重複チェック用の統一プローブ。
// 指定カラムが全て一致する行の有無を返す。excludeID > 0 なら自分自身(id)を除外（更新時用）。
// create/update でチェック方針が分かれないよう、各エンティティはこれを経由すること。
func ExistsWhere(ctx context.Context, q DBTX, table string, excludeID int64, keys ...Key) (bool, error) {
	if len(keys) == 0 {
		return false, fmt.Errorf("ExistsWhere: no keys for table %s", table)
	}

	sb := strings.Builder{}
	args := make([]any, 0, len(keys)+1)
	sb.WriteString(`SELECT EXISTS(SELECT 1 FROM ` + table + ` WHERE 1=1`)
	for _, k := range keys {
		sb.WriteString(` AND ` + k.Col + ` = ?`)
		args = append(args, k.Val)
	}
	if excludeID > 0 {
		sb.WriteString(` AND id <> ?`)
		args = append(args, excludeID)
	}
	sb.WriteString(`)`)

	var found bool
	if err := q.QueryRowContext(ctx, sb.String(), args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}
