// Package leadsvc - Nấc thang trạng thái lead, dùng chung cho business và person.
package leadsvc

import (
	"fmt"
	"strings"

	leadmodels "case_harvest/internal/api/leads/models"
	"case_harvest/internal/common"
)

// leadStatusRank thứ tự các nấc không phải terminal — chỉ được tiến, không được lùi.
var leadStatusRank = map[string]int{
	leadmodels.LeadStatusPending:   0,
	leadmodels.LeadStatusEnriched:  1,
	leadmodels.LeadStatusContacted: 2,
	leadmodels.LeadStatusQualified: 3,
}

// isTerminalLeadStatus won/lost là trạng thái cuối, không chuyển tiếp được nữa.
func isTerminalLeadStatus(status string) bool {
	return status == leadmodels.LeadStatusWon || status == leadmodels.LeadStatusLost
}

// ValidateLeadTransition kiểm tra một lần chuyển trạng thái có hợp lệ không.
// Quy tắc: chỉ tiến một nấc liền kề; won/lost chỉ đến được từ qualified; terminal là vĩnh viễn.
func ValidateLeadTransition(from, to string) error {
	if isTerminalLeadStatus(from) {
		return common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Lead đã ở trạng thái cuối %s, không chuyển tiếp được", from),
			common.StatusBadRequest, nil)
	}
	fromRank, ok := leadStatusRank[from]
	if !ok {
		return common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Trạng thái hiện tại không hợp lệ: %s", from),
			common.StatusBadRequest, nil)
	}
	if isTerminalLeadStatus(to) {
		if from != leadmodels.LeadStatusQualified {
			return common.NewError(common.ErrCodeBusinessState,
				fmt.Sprintf("Chỉ chuyển được sang %s từ %s, trạng thái hiện tại là %s", to, leadmodels.LeadStatusQualified, from),
				common.StatusBadRequest, nil)
		}
		return nil
	}
	toRank, ok := leadStatusRank[to]
	if !ok {
		return common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Trạng thái đích không hợp lệ: %s", to),
			common.StatusBadRequest, nil)
	}
	if toRank != fromRank+1 {
		return common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Không chuyển được từ %s sang %s: nấc thang chỉ tiến một bậc", from, to),
			common.StatusBadRequest, nil)
	}
	return nil
}

// NormalizeLeadName chuẩn hóa tên làm khóa dedup: lowercase, gộp khoảng trắng.
func NormalizeLeadName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
