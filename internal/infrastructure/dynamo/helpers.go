package dynamo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// strKey builds a DynamoDB primary key map with a single string attribute.
func strKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

// buildUpdateExpr converts field->value updates and a list of attributes to
// drop into a DynamoDB "SET ... REMOVE ..." expression. Keys are processed in
// sorted order so identical input always yields an identical expression.
func buildUpdateExpr(updates map[string]interface{}, removes []string) (expr string, names map[string]string, values map[string]types.AttributeValue, err error) {
	if len(updates) == 0 && len(removes) == 0 {
		return "", nil, nil, fmt.Errorf("no fields to update")
	}
	names = make(map[string]string)
	values = make(map[string]types.AttributeValue)

	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sets []string
	for i, k := range keys {
		nameKey := fmt.Sprintf("#f%d", i)
		valueKey := fmt.Sprintf(":v%d", i)
		names[nameKey] = k
		av, mErr := attributevalue.Marshal(updates[k])
		if mErr != nil {
			return "", nil, nil, fmt.Errorf("marshal field %s: %w", k, mErr)
		}
		values[valueKey] = av
		sets = append(sets, fmt.Sprintf("%s = %s", nameKey, valueKey))
	}
	if len(sets) > 0 {
		expr = "SET " + strings.Join(sets, ", ")
	}

	var rms []string
	for j, k := range removes {
		nameKey := fmt.Sprintf("#r%d", j)
		names[nameKey] = k
		rms = append(rms, nameKey)
	}
	if len(rms) > 0 {
		if expr != "" {
			expr += " "
		}
		expr += "REMOVE " + strings.Join(rms, ", ")
	}
	return expr, names, values, nil
}
