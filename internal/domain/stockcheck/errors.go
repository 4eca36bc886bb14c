package stockcheck

import "fmt"

func errNoColumnValue(index, count int) string {
	return fmt.Sprintf("no value in mail column #%d (row has %d columns)", index, count)
}

func errBadCredential(index int) string {
	return fmt.Sprintf("invalid mailbox credential in column #%d, expected Mail|Password|RefreshToken|ClientID", index)
}

func errNoEmail(index int) string {
	return fmt.Sprintf("no valid email found in mail column #%d", index)
}
