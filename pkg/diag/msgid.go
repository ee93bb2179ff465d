package diag

// MsgID tags a diagnostic so existing log tooling can match on it.
// The string values must not change.
type MsgID string

// Touchpanel.
const (
	TPCoordBufErr     MsgID = "NYXTP_COORDBUF_ERR"
	TPCoordsErr       MsgID = "NYXTP_COORDS_ERR"
	TPFingerWeight    MsgID = "NYXTP_FINGER_WT"
	TPFingerLowWeight MsgID = "NYXTP_FING_LOW_WT"
	TPNoTouchErr      MsgID = "NYXTP_NOTOUCH_ERR"
	TPVboxOpenErr     MsgID = "NYXTP_VBOX_OPEN_ERR"
	TPIoctlErr        MsgID = "NYXTP_IOCTL_ERR"
	TPIoctlReadErr    MsgID = "NYXTP_IOCTL_READ_ERR"
	TPIoctlRequestErr MsgID = "NYXTP_IOCTL_REQUEST_ERR"
	TPSetPtrErr       MsgID = "NYXTP_SETPTR_ERR"
	TPOpenFBErr       MsgID = "NYXTP_OPEN_FB_ERR"
	TPVScreenInfoErr  MsgID = "NYXTP_FB_VSCREEN_INFO_ERR"
	TPOpenErr         MsgID = "NYXTP_OPEN_ERR"
	TPEventHLimitErr  MsgID = "NYXTP_EVENT_HLIMIT_ERR"
	TPEventVLimitErr  MsgID = "NYXTP_EVENT_VLIMIT_ERR"
	TPResErr          MsgID = "NYXTP_DP_RES_ERR"
	TPEventReadErr    MsgID = "NYXTP_INPUT_EVENT_READ_ERR"
	TPAbsErr          MsgID = "NYXTP_ABS_ERR"
	TPEventNullErr    MsgID = "NYXTP_EVENT_NULL_ERR"
	TPInvalidEvent    MsgID = "NYXTP_INVALID_EVENT"
	TPTooManyItemsErr MsgID = "NYXTP_TOOMANY_ITEMS_ERR"
	TPOutOfMemory     MsgID = "NYXTP_OUT_OF_MEM_ERR"
)

// Keys.
const (
	KeyEventErr     MsgID = "NYXKEY_EVENT_ERR"
	KeyEventReadErr MsgID = "NYXKEY_EVENT_READ_ERR"
	KeysOpenErr     MsgID = "NYXKEY_OPEN_ERR"
	KeyOutOfMemory  MsgID = "NYXKEY_OUT_OF_MEM_ERR"
)

// Battery.
const (
	BatOpenErr         MsgID = "NYXBAT_OPEN_ERR"
	BatOutOfMemory     MsgID = "NYXBAT_OUT_OF_MEMORY"
	BatGetContentErr   MsgID = "NYXBAT_GET_CONTENT_ERR"
	BatStrtodErr       MsgID = "NYXBAT_STRTOD_ERR"
	BatTooManyItemsErr MsgID = "NYXBAT_TOOMANY_ITEMS_ERR"
)

// Charger.
const (
	ChgOpenErr     MsgID = "NYXCHG_OPEN_ERR"
	ChgOutOfMemory MsgID = "NYXCHG_OUT_OF_MEM_ERR"
)
