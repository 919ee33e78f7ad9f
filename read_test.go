package hl7

import (
	"errors"
	"testing"

	"github.com/jcomellas/ex-hl7/internal/testutil"
)

const sampleMSH = `MSH|^~\&|CLIENTHL7|CLI01020304|SERVHL7|PREPAGA^112233^IIN|20120201101155||ZQA^Z02^ZQA_Z02|00XX20120201101155|P|2.4|||ER|SU|ARG` + "\r"

func TestReadMSH(t *testing.T) {
	msg, err := Read([]byte(sampleMSH))
	testutil.NoError(t, err, "read")
	testutil.Equal(t, 1, msg.Len(), "segment count")

	msh := msg.Segment("MSH", 0)
	testutil.NotNil(t, msh, "MSH present")

	sep, _ := msh.GetString("field_separator")
	testutil.Equal(t, "|", sep, "MSH.1")
	enc, _ := msh.GetString("encoding_characters")
	testutil.Equal(t, `^~\&`, enc, "MSH.2")

	app, _ := msh.GetString("sending_application")
	testutil.Equal(t, "CLIENTHL7", app, "MSH.3")

	id, ok := msh.GetInt("receiving_facility_id")
	testutil.True(t, ok, "MSH.6.2 typed")
	testutil.Equal(t, int64(112233), id, "MSH.6.2")

	dt, ok := msh.GetDateTime("message_datetime")
	testutil.True(t, ok, "MSH.7 typed")
	testutil.Equal(t, DateTime{Year: 2012, Month: 2, Day: 1, Hour: 10, Minute: 11, Second: 55}, dt, "MSH.7")

	trigger, _ := msh.GetString("trigger_event")
	testutil.Equal(t, "Z02", trigger, "MSH.9.2")
	country, _ := msh.GetString("country_code")
	testutil.Equal(t, "ARG", country, "MSH.17")
}

func TestReadMultipleSegments(t *testing.T) {
	data := sampleMSH +
		"PID|1||1234567890ABC^^^&112233&IIN^HC\r" +
		"PR1|1||903401^^99DH\r" +
		"NTE|1||first note\r"
	msg, err := Read([]byte(data))
	testutil.NoError(t, err, "read")
	testutil.SliceEqual(t, []string{"MSH", "PID", "PR1", "NTE"}, msg.SegmentIDs(), "segments")

	pid := msg.Segment("PID", 0)
	patientID, _ := pid.GetString("patient_id")
	testutil.Equal(t, "1234567890ABC", patientID, "PID.3.1")
	authority, _ := pid.GetString("authority_id")
	testutil.Equal(t, "112233", authority, "PID.3.4.2")
	idType, _ := pid.GetString("patient_id_type")
	testutil.Equal(t, "HC", idType, "PID.3.5")

	nte := msg.Segment("NTE", 0)
	comment, _ := nte.GetString("comment")
	testutil.Equal(t, "first note", comment, "NTE.3")
}

func TestReadNullField(t *testing.T) {
	msg, err := Read([]byte(sampleMSH + `NTE|1||""` + "\r"))
	testutil.NoError(t, err, "read")
	testutil.True(t, msg.Segment("NTE", 0).FieldIsNull("comment"), "explicit null")
}

func TestReadIncomplete(t *testing.T) {
	_, err := Read([]byte("MSH|^~\\&|APP"))
	testutil.ErrorIs(t, err, ErrMoreInput, "mid-message input")
}

func TestReadIncremental(t *testing.T) {
	r := NewReader()
	testutil.NoError(t, r.Read([]byte("MSH|^~\\&|CLIENTHL7|CLI0102")), "first chunk")

	_, err := r.Finish()
	testutil.ErrorIs(t, err, ErrMoreInput, "finish mid-segment")

	testutil.NoError(t, r.Read([]byte("0304|SERVHL7\rNTE|1\r")), "second chunk")
	msg, err := r.Finish()
	testutil.NoError(t, err, "finish")
	testutil.SliceEqual(t, []string{"MSH", "NTE"}, msg.SegmentIDs(), "segments")
	fac, _ := msg.Segment("MSH", 0).GetString("sending_facility")
	testutil.Equal(t, "CLI01020304", fac, "field split across chunks")
}

func TestReadTextFormat(t *testing.T) {
	msg, err := Read([]byte("MSH|^~\\&|APP|FAC\nNTE|1\n"), WithInputFormat(FormatText))
	testutil.NoError(t, err, "read text dialect")
	testutil.Equal(t, 2, msg.Len(), "segments")
}

func TestReadUnknownSegmentID(t *testing.T) {
	_, err := Read([]byte(sampleMSH + "ZZZ|1\r"))
	testutil.Error(t, err, "unknown segment")
	var re *ReadError
	testutil.True(t, errors.As(err, &re), "error type")
	testutil.Equal(t, ErrKindUnknownSegmentID, re.Kind, "kind")
	testutil.Equal(t, "ZZZ", re.SegmentID, "context")
}

func TestReadBadValueContext(t *testing.T) {
	_, err := Read([]byte(sampleMSH + "AUT|||||20130229\r"))
	testutil.Error(t, err, "impossible date")
	var re *ReadError
	testutil.True(t, errors.As(err, &re), "error type")
	testutil.Equal(t, ErrKindBadValue, re.Kind, "kind")
	testutil.Equal(t, "AUT", re.SegmentID, "segment")
	testutil.Equal(t, 5, re.Sequence, "sequence")
}

func TestReadCustomDelimiters(t *testing.T) {
	msg, err := Read([]byte("MSH#!*?@#APP#FAC#RECV#PREPAGA!112233\r"))
	testutil.NoError(t, err, "read custom delimiters")
	msh := msg.Segment("MSH", 0)
	app, _ := msh.GetString("sending_application")
	testutil.Equal(t, "APP", app, "field split on #")
	id, ok := msh.GetInt("receiving_facility_id")
	testutil.True(t, ok, "component split on !")
	testutil.Equal(t, int64(112233), id, "MSH.6.2")
}

func TestReadEmptyInput(t *testing.T) {
	msg, err := Read(nil)
	testutil.NoError(t, err, "empty input is an empty message")
	testutil.Equal(t, 0, msg.Len(), "no segments")
}

func TestReadZSegmentViaRegistry(t *testing.T) {
	// Z segments become readable once registered.
	_, err := Read([]byte(sampleMSH + "ZAU|PREV01\r"))
	testutil.NoError(t, err, "ZAU is in the default tables")
}
