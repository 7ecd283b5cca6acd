// Package boot runs the container build-and-boot sequence as a strictly
// linear state machine:
//
//	INSTALL_DEPS -> PROVISION_SCRATCH -> COPY_SOURCE -> LAUNCH -> RUNNING
//
// Every transition is one-directional. A failure in any build stage moves
// the machine to BUILD_FAILED and a failure in the launch stage moves it to
// CRASHED; there is no retry, rollback, or degraded mode at this layer.
package boot
